package egg

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTier       = errors.New("invalid tier")
	ErrInvalidGachaType  = errors.New("invalid gacha type")
	ErrInvalidHatchWaves = errors.New("invalid hatch waves")
	ErrInvalidAmount     = errors.New("invalid egg amount")
	ErrInvalidVariant    = errors.New("invalid variant tier")
)

// Validate checks a batch request and reports every problem at once.
func (r Request) Validate() error {
	var errs []error
	if r.Tier < 0 || r.Tier > MaxTier {
		errs = append(errs, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidTier, r.Tier, MaxTier))
	}
	if r.GachaType < 0 || r.GachaType > MaxGachaType {
		errs = append(errs, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidGachaType, r.GachaType, MaxGachaType))
	}
	if r.HatchWaves < 0 || r.HatchWaves > MaxHatchWaves {
		errs = append(errs, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidHatchWaves, r.HatchWaves, MaxHatchWaves))
	}
	if r.Amount < 0 {
		errs = append(errs, fmt.Errorf("%w: %d must be >= 0", ErrInvalidAmount, r.Amount))
	}
	if r.Shiny && (r.VariantTier < 0 || r.VariantTier > MaxVariantTier) {
		errs = append(errs, fmt.Errorf("%w: %d not in 0..%d", ErrInvalidVariant, r.VariantTier, MaxVariantTier))
	}
	return errors.Join(errs...)
}
