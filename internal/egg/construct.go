package egg

import (
	"time"

	"github.com/xtding233/egg-gacha/internal/catalog"
	"github.com/xtding233/egg-gacha/internal/gacha"
)

// Generator builds egg batches. It holds no state between calls besides its
// random source; give each goroutine its own seeded source.
type Generator struct {
	RNG gacha.RandomSource
	Now func() time.Time
}

// NewGenerator creates a generator. nil rng => gacha.DefaultRNG().
func NewGenerator(rng gacha.RandomSource) *Generator {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Generator{RNG: rng, Now: time.Now}
}

// Construct produces req.Amount independent eggs.
//
// Per egg:
// - tier 4 draws a reserved-family id from tier 0's range, other tiers draw a normal id from their own.
// - shiny if req.Shiny, else with 1/ShinyRate odds.
// - shiny: sourceType 1, variant = req.VariantTier-1 if forced else 0, and a species matched
// against egg type tier+1 replaces tier with eggType-1 when one exists.
// - not shiny: sourceType = gachaType, variant 0, tier unchanged.
func (g *Generator) Construct(req Request, cat catalog.Catalog) ([]Egg, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	reserved := req.Tier == TierReserved
	rangeTier := req.Tier
	if reserved {
		rangeTier = TierCommon
	}
	start, end := IDBoundaries(rangeTier)

	eggs := make([]Egg, 0, req.Amount)
	for i := 0; i < req.Amount; i++ {
		e := Egg{
			ID:         GenerateID(start, end, reserved, g.RNG),
			GachaType:  int(req.GachaType),
			HatchWaves: req.HatchWaves,
			Timestamp:  g.now().UnixMilli(),
		}

		lucky, err := gacha.OneIn(ShinyRate, g.RNG)
		if err != nil {
			return nil, err
		}

		if req.Shiny || lucky {
			e.IsShiny = true
			if req.Shiny {
				e.VariantTier = req.VariantTier - 1
			}
			e.SourceType = ShinySourceType
			e.Tier = int(req.Tier)
			if m, ok := MatchShinySpecies(int(req.Tier)+1, cat, g.RNG); ok {
				species := m.Species
				e.Species = &species
				e.Tier = m.EggType - 1
			}
		} else {
			e.SourceType = int(req.GachaType)
			e.Tier = int(req.Tier)
		}

		eggs = append(eggs, e)
	}
	return eggs, nil
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

// ConstructEggs is a one-shot helper around Generator.Construct.
func ConstructEggs(req Request, cat catalog.Catalog, rng gacha.RandomSource) ([]Egg, error) {
	return NewGenerator(rng).Construct(req, cat)
}
