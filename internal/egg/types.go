// types.go
package egg

// Constants shared with the game's save format. Changing any of them makes
// generated eggs unreadable or misclassified by the game.
const (
	EggSeed         int64 = 1073741824 // 2^30, width of one tier's id range
	ReservedModulus int64 = 204        // ids divisible by this hatch the reserved species
	ShinyRate             = 64         // 1/x shiny odds for gacha eggs
	MinIDStart      int64 = 255        // floor for a range start
)

// Tier is the zero-indexed egg tier used for id ranges.
type Tier int

const (
	TierCommon Tier = iota
	TierRare
	TierEpic
	TierLegendary
	TierReserved // reserved collectible family, ids are multiples of ReservedModulus
	TierRegional // custom batch: shinies matched against regional forms
	TierParadox  // custom batch: shinies matched against paradox forms

	MaxTier = TierParadox
)

func (t Tier) String() string {
	switch t {
	case TierCommon:
		return "Common"
	case TierRare:
		return "Rare"
	case TierEpic:
		return "Epic"
	case TierLegendary:
		return "Legendary"
	case TierReserved:
		return "Manaphy"
	case TierRegional:
		return "Regional"
	case TierParadox:
		return "Paradox"
	default:
		return "Unknown"
	}
}

// Egg types are one-indexed (Tier + 1). Two values select name/id based
// matching instead of the catalog's eggType field.
const (
	EggTypeRegional = 6
	EggTypeParadox  = 7
)

// GachaType is the acquisition channel code stored on an egg.
type GachaType int

const (
	GachaMove GachaType = iota
	GachaLegendary
	GachaShiny
	GachaSameSpecies
	GachaEvent

	MaxGachaType = GachaEvent
)

func (g GachaType) String() string {
	switch g {
	case GachaMove:
		return "MoveGacha"
	case GachaLegendary:
		return "LegendaryGacha"
	case GachaShiny:
		return "ShinyGacha"
	case GachaSameSpecies:
		return "SameSpeciesEgg"
	case GachaEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// ShinySourceType is the sourceType written on every shiny egg.
const ShinySourceType = 1

// MaxVariantTier bounds the requested shiny variant (0..3).
const MaxVariantTier = 3

// MaxHatchWaves is the longest hatch duration the game assigns.
const MaxHatchWaves = 100

// Egg mirrors one entry of the save's eggs array.
type Egg struct {
	ID          int64 `json:"id"`
	GachaType   int   `json:"gachaType"`
	SourceType  int   `json:"sourceType"`
	HatchWaves  int   `json:"hatchWaves"`
	Timestamp   int64 `json:"timestamp"` // ms since epoch
	IsShiny     bool  `json:"isShiny"`
	VariantTier int   `json:"variantTier"`
	Tier        int   `json:"tier"`
	Species     *int  `json:"species,omitempty"`
}

// Request describes one batch.
type Request struct {
	Tier        Tier
	GachaType   GachaType
	HatchWaves  int
	Amount      int
	Shiny       bool // force every egg shiny
	VariantTier int  // requested shiny variant, only used when Shiny
}

// DefaultHatchWaves returns the game's default hatch duration for a tier.
func DefaultHatchWaves(t Tier) int {
	switch t {
	case TierCommon:
		return 10
	case TierRare:
		return 25
	case TierEpic, TierReserved:
		return 50
	default:
		return 100
	}
}
