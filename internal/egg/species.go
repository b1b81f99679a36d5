package egg

import (
	"slices"
	"strings"

	"github.com/xtding233/egg-gacha/internal/catalog"
	"github.com/xtding233/egg-gacha/internal/gacha"
)

// regionalPrefixes are the lower-case name fragments of regional forms.
var regionalPrefixes = []string{"alola_", "galar_", "hisui_", "paldea_"}

// paradoxIDs lists the paradox-form species.
var paradoxIDs = []int{
	984, 985, 986, 987, 988, 989, 990, 991, 992, 993, 994, 995,
	1005, 1006, 1009, 1010, 1020, 1021, 1022, 1023,
}

// Match is the species chosen for a shiny egg.
type Match struct {
	Species int
	EggType int
}

func isRegional(name string) bool {
	lower := strings.ToLower(name)
	for _, p := range regionalPrefixes {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func isParadox(key int) bool {
	return slices.Contains(paradoxIDs, key)
}

// candidates filters the catalog under the policy selected by eggType.
// Species without egg metadata never qualify.
func candidates(eggType int, cat catalog.Catalog) []catalog.Species {
	var out []catalog.Species
	for _, s := range cat {
		if !s.Eligible() {
			continue
		}
		switch eggType {
		case EggTypeRegional:
			if isRegional(s.Name) {
				out = append(out, s)
			}
		case EggTypeParadox:
			if isParadox(s.Key) {
				out = append(out, s)
			}
		default:
			if *s.EggType == eggType {
				out = append(out, s)
			}
		}
	}
	return out
}

// MatchShinySpecies picks a species uniformly among those matching eggType.
// It returns false when nothing qualifies.
func MatchShinySpecies(eggType int, cat catalog.Catalog, rng gacha.RandomSource) (Match, bool) {
	pool := candidates(eggType, cat)
	if len(pool) == 0 {
		return Match{}, false
	}
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	s := pool[rng.IntN(len(pool))]
	return Match{Species: s.Key, EggType: *s.EggType}, true
}
