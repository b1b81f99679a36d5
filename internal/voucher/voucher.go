package voucher

import "errors"

var ErrInvalidVoucher = errors.New("invalid voucher")

// Voucher defines how many vouchers a number of egg pulls consumes.
type Voucher struct {
	Name         string // e.g. "regular", "plus"
	PerPull      int    // vouchers per single pull; 0 => pulls only come in multi-pulls
	PerMultiPull int    // optional; vouchers per multi-pull
	MultiSize    int    // optional; pulls per multi-pull, must be > 1 when PerMultiPull is set
}

// Validate reports whether v can price any pull count.
func (v Voucher) Validate() error {
	if v.PerPull < 0 || v.PerMultiPull < 0 || v.MultiSize < 0 {
		return ErrInvalidVoucher
	}
	if v.PerMultiPull > 0 && v.MultiSize < 2 {
		return ErrInvalidVoucher
	}
	if v.PerPull == 0 && v.PerMultiPull == 0 {
		return ErrInvalidVoucher
	}
	return nil
}

// VouchersForPulls returns how many vouchers n pulls cost. Pulls that do
// not fill a multi-pull are paid singly, or as one more multi-pull when
// the voucher has no single-pull price.
func (v Voucher) VouchersForPulls(n int) int {
	if n <= 0 {
		return 0
	}
	if v.PerMultiPull > 0 && v.MultiSize > 1 {
		multis := n / v.MultiSize
		rem := n % v.MultiSize
		if v.PerPull == 0 {
			if rem > 0 {
				multis++
			}
			return multis * v.PerMultiPull
		}
		return multis*v.PerMultiPull + rem*v.PerPull
	}
	return n * v.PerPull
}
