package gacha

import "errors"

var ErrInvalidSides = errors.New("invalid die size; must be >= 1")

// Roll returns a uniform integer in [1, sides].
// nil rng => DefaultRNG.

func Roll(sides int, rng RandomSource) (int, error) {
	if err := validateSides(sides); err != nil {
		return 0, err
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.IntN(sides) + 1, nil
}

// OneIn reports whether a die with n sides came up 1, i.e. a 1/n chance.
func OneIn(n int, rng RandomSource) (bool, error) {
	v, err := Roll(n, rng)
	if err != nil {
		return false, err
	}
	return v == 1, nil
}
