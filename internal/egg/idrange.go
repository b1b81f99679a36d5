package egg

import "github.com/xtding233/egg-gacha/internal/gacha"

// IDBoundaries returns the inclusive id range [start, end] for a tier.
// start is clamped to MinIDStart so tier 0 stays clear of small ids.
func IDBoundaries(t Tier) (start, end int64) {
	start = int64(t) * EggSeed
	end = (int64(t)+1)*EggSeed - 1
	return max(start, MinIDStart), end
}

// GenerateID draws an egg id from [start, end].
//
// reserved => uniform over the multiples of ReservedModulus between start
// (aligned down) and end (aligned down), so the result is always divisible.
// Otherwise => uniform over [start, end]; a multiple of ReservedModulus is
// moved down by one and the result is never below 1.
func GenerateID(start, end int64, reserved bool, rng gacha.RandomSource) int64 {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	if reserved {
		lo := start / ReservedModulus * ReservedModulus
		hi := (end/ReservedModulus + 1) * ReservedModulus // exclusive
		steps := (hi - lo) / ReservedModulus
		return lo + rng.Int64N(steps)*ReservedModulus
	}

	id := start + rng.Int64N(end-start+1)
	if id%ReservedModulus == 0 {
		id--
	}
	return max(id, 1)
}
