package egg

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/xtding233/egg-gacha/internal/catalog"
	"github.com/xtding233/egg-gacha/internal/gacha"
)

func intp(v int) *int { return &v }

// fixture: eggType 1..4 species, regional forms, paradox forms and an ineligible entry.
func fixtureCatalog() catalog.Catalog {
	return catalog.Catalog{
		{Key: 1, Name: "BULBASAUR", EggType: intp(1)},
		{Key: 4, Name: "CHARMANDER", EggType: intp(1)},
		{Key: 147, Name: "DRATINI", EggType: intp(2)},
		{Key: 150, Name: "MEWTWO"},
		{Key: 443, Name: "GIBLE", EggType: intp(3)},
		{Key: 490, Name: "MANAPHY", EggType: intp(4)},
		{Key: 984, Name: "GREAT_TUSK", EggType: intp(4)},
		{Key: 1005, Name: "ROARING_MOON", EggType: intp(4)},
		{Key: 1024, Name: "TERAPAGOS"},
		{Key: 2026, Name: "ALOLA_RAICHU", EggType: intp(2)},
		{Key: 4052, Name: "Galar_Zigzagoon", EggType: intp(1)},
		{Key: 6100, Name: "PALDEA_TAUROS"}, // regional but not egg-eligible
	}
}

// stubRNG lets a test pin integer draws.
type stubRNG struct {
	intN func(n int) int
}

func (s stubRNG) IntN(n int) int       { return s.intN(n) }
func (s stubRNG) Int64N(n int64) int64 { return 0 }

// neverShiny rolls the highest face, so the 1/64 roll never hits.
func neverShiny() gacha.RandomSource {
	return stubRNG{intN: func(n int) int { return n - 1 }}
}

// alwaysFirst rolls 1 and picks the first candidate.
func alwaysFirst() gacha.RandomSource {
	return stubRNG{intN: func(int) int { return 0 }}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIDBoundaries(t *testing.T) {
	for tier := Tier(0); tier <= MaxTier+1; tier++ {
		start, end := IDBoundaries(tier)
		if start > end {
			t.Fatalf("tier %d: start %d > end %d", tier, start, end)
		}
		if start < MinIDStart {
			t.Fatalf("tier %d: start %d below floor", tier, start)
		}
		if tier > 0 {
			_, prevEnd := IDBoundaries(tier - 1)
			if prevEnd+1 != start {
				t.Fatalf("tier %d: range not contiguous with previous (%d, %d)", tier, prevEnd, start)
			}
		}
	}
	if s, e := IDBoundaries(TierCommon); s != 255 || e != EggSeed-1 {
		t.Fatalf("tier 0 = (%d, %d)", s, e)
	}
	if s, e := IDBoundaries(TierEpic); s != 2147483648 || e != 3221225471 {
		t.Fatalf("tier 2 = (%d, %d)", s, e)
	}
}

func TestGenerateIDNormal(t *testing.T) {
	rng := gacha.NewSeededRNG(3)
	for tier := Tier(0); tier <= MaxTier; tier++ {
		start, end := IDBoundaries(tier)
		for i := 0; i < 5000; i++ {
			id := GenerateID(start, end, false, rng)
			if id < 1 {
				t.Fatalf("tier %d: id %d < 1", tier, id)
			}
			if id%ReservedModulus == 0 {
				t.Fatalf("tier %d: id %d collides with reserved family", tier, id)
			}
			if id < start-1 || id > end {
				t.Fatalf("tier %d: id %d outside [%d, %d]", tier, id, start, end)
			}
		}
	}
}

func TestGenerateIDNormalEdges(t *testing.T) {
	if got := GenerateID(204, 204, false, nil); got != 203 {
		t.Fatalf("multiple of 204 must step down; got %d", got)
	}
	if got := GenerateID(0, 0, false, nil); got != 1 {
		t.Fatalf("result must be clamped to 1; got %d", got)
	}
	// full coverage of a tiny closed range
	seen := map[int64]bool{}
	rng := gacha.NewSeededRNG(9)
	for i := 0; i < 500; i++ {
		seen[GenerateID(10, 13, false, rng)] = true
	}
	for v := int64(10); v <= 13; v++ {
		if !seen[v] {
			t.Fatalf("value %d never drawn from [10, 13]", v)
		}
	}
}

func TestGenerateIDReserved(t *testing.T) {
	rng := gacha.NewSeededRNG(5)
	for tier := Tier(0); tier <= MaxTier; tier++ {
		start, end := IDBoundaries(tier)
		lo := start / ReservedModulus * ReservedModulus
		for i := 0; i < 5000; i++ {
			id := GenerateID(start, end, true, rng)
			if id%ReservedModulus != 0 {
				t.Fatalf("tier %d: reserved id %d not divisible by %d", tier, id, ReservedModulus)
			}
			if id < lo || id > end {
				t.Fatalf("tier %d: reserved id %d outside [%d, %d]", tier, id, lo, end)
			}
		}
	}
}

func TestGenerateIDReservedCoversProgression(t *testing.T) {
	rng := gacha.NewSeededRNG(11)
	seen := map[int64]bool{}
	for i := 0; i < 2000; i++ {
		seen[GenerateID(0, 1000, true, rng)] = true
	}
	want := []int64{0, 204, 408, 612, 816}
	if len(seen) != len(want) {
		t.Fatalf("drew %d distinct values, want %d: %v", len(seen), len(want), seen)
	}
	for _, v := range want {
		if !seen[v] {
			t.Fatalf("multiple %d never drawn", v)
		}
	}
}

func TestMatchShinySpeciesRegional(t *testing.T) {
	cat := fixtureCatalog()
	rng := gacha.NewSeededRNG(1)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		m, ok := MatchShinySpecies(EggTypeRegional, cat, rng)
		if !ok {
			t.Fatalf("regional match expected")
		}
		if m.Species != 2026 && m.Species != 4052 {
			t.Fatalf("non-regional species %d matched", m.Species)
		}
		seen[m.Species] = true
	}
	if len(seen) != 2 {
		t.Fatalf("selection not spread over candidates: %v", seen)
	}
}

func TestMatchShinySpeciesParadox(t *testing.T) {
	cat := fixtureCatalog()
	rng := gacha.NewSeededRNG(2)
	for i := 0; i < 200; i++ {
		m, ok := MatchShinySpecies(EggTypeParadox, cat, rng)
		if !ok {
			t.Fatalf("paradox match expected")
		}
		if !isParadox(m.Species) {
			t.Fatalf("species %d is not a paradox form", m.Species)
		}
		if m.EggType != 4 {
			t.Fatalf("egg type must come from catalog metadata; got %d", m.EggType)
		}
	}
}

func TestMatchShinySpeciesByEggType(t *testing.T) {
	cat := fixtureCatalog()
	rng := gacha.NewSeededRNG(4)
	for i := 0; i < 200; i++ {
		m, ok := MatchShinySpecies(1, cat, rng)
		if !ok || m.EggType != 1 {
			t.Fatalf("eggType 1 match expected, got %+v ok=%v", m, ok)
		}
		switch m.Species {
		case 1, 4, 4052:
		default:
			t.Fatalf("species %d does not have eggType 1", m.Species)
		}
	}
	if _, ok := MatchShinySpecies(5, cat, rng); ok {
		t.Fatalf("no species has eggType 5")
	}
	if _, ok := MatchShinySpecies(1, nil, rng); ok {
		t.Fatalf("empty catalog must not match")
	}
	only := catalog.Catalog{{Key: 6100, Name: "PALDEA_TAUROS"}}
	if _, ok := MatchShinySpecies(EggTypeRegional, only, rng); ok {
		t.Fatalf("species without egg metadata must be skipped")
	}
}

func TestConstructZeroAmount(t *testing.T) {
	eggs, err := ConstructEggs(Request{Tier: TierRare}, fixtureCatalog(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if eggs == nil || len(eggs) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", eggs)
	}
}

func TestConstructForcedShiny(t *testing.T) {
	before := time.Now().UnixMilli()
	eggs, err := ConstructEggs(Request{
		Tier: TierEpic, GachaType: GachaMove, HatchWaves: 7, Amount: 50, Shiny: true, VariantTier: 3,
	}, fixtureCatalog(), gacha.NewSeededRNG(8))
	if err != nil {
		t.Fatal(err)
	}
	after := time.Now().UnixMilli()
	if len(eggs) != 50 {
		t.Fatalf("len=%d", len(eggs))
	}
	for i, e := range eggs {
		if !e.IsShiny || e.VariantTier != 2 || e.SourceType != ShinySourceType {
			t.Fatalf("egg %d: %+v", i, e)
		}
		if e.Timestamp < before || e.Timestamp > after {
			t.Fatalf("egg %d: timestamp %d outside [%d, %d]", i, e.Timestamp, before, after)
		}
		if e.GachaType != int(GachaMove) || e.HatchWaves != 7 {
			t.Fatalf("egg %d: inputs not copied: %+v", i, e)
		}
		// eggType 3 => GIBLE, tier projected back to 2
		if e.Species == nil || *e.Species != 443 || e.Tier != 2 {
			t.Fatalf("egg %d: species substitution wrong: %+v", i, e)
		}
	}
}

func TestConstructShinyOverridesTier(t *testing.T) {
	g := NewGenerator(gacha.NewSeededRNG(12))
	eggs, err := g.Construct(Request{Tier: TierRegional, Amount: 30, Shiny: true, VariantTier: 1}, fixtureCatalog())
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range eggs {
		if e.Species == nil {
			t.Fatalf("egg %d: regional species expected", i)
		}
		want := map[int]int{2026: 1, 4052: 0}[*e.Species]
		if e.Tier != want {
			t.Fatalf("egg %d: species %d tier=%d want %d", i, *e.Species, e.Tier, want)
		}
		if e.VariantTier != 0 {
			t.Fatalf("egg %d: variant=%d want 0", i, e.VariantTier)
		}
	}
}

func TestConstructShinyWithoutMatchKeepsTier(t *testing.T) {
	eggs, err := ConstructEggs(Request{Tier: TierReserved, Amount: 5, Shiny: true, VariantTier: 2}, fixtureCatalog(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range eggs {
		if e.Species != nil || e.Tier != int(TierReserved) {
			t.Fatalf("egg %d: no eggType 5 species exists, got %+v", i, e)
		}
		if e.ID%ReservedModulus != 0 {
			t.Fatalf("egg %d: reserved batch id %d not divisible", i, e.ID)
		}
	}
}

func TestConstructNotShiny(t *testing.T) {
	g := NewGenerator(neverShiny())
	eggs, err := g.Construct(Request{
		Tier: TierLegendary, GachaType: GachaShiny, HatchWaves: 100, Amount: 10, Shiny: false, VariantTier: 3,
	}, fixtureCatalog())
	if err != nil {
		t.Fatal(err)
	}
	start, _ := IDBoundaries(TierLegendary)
	for i, e := range eggs {
		if e.IsShiny || e.VariantTier != 0 || e.Species != nil {
			t.Fatalf("egg %d: %+v", i, e)
		}
		if e.SourceType != int(GachaShiny) || e.Tier != int(TierLegendary) {
			t.Fatalf("egg %d: sourceType/tier not echoed: %+v", i, e)
		}
		if e.ID != start {
			t.Fatalf("egg %d: id %d want range start %d", i, e.ID, start)
		}
	}
}

func TestConstructLuckyShinyHasNoVariant(t *testing.T) {
	g := NewGenerator(alwaysFirst())
	eggs, err := g.Construct(Request{Tier: TierCommon, GachaType: GachaEvent, Amount: 3, VariantTier: 3}, fixtureCatalog())
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range eggs {
		if !e.IsShiny || e.VariantTier != 0 || e.SourceType != ShinySourceType {
			t.Fatalf("egg %d: %+v", i, e)
		}
		// first eggType 1 species in catalog order
		if e.Species == nil || *e.Species != 1 || e.Tier != 0 {
			t.Fatalf("egg %d: %+v", i, e)
		}
	}
}

func TestConstructReservedUsesTierZeroRange(t *testing.T) {
	eggs, err := ConstructEggs(Request{Tier: TierReserved, Amount: 500}, catalog.Catalog{}, gacha.NewSeededRNG(21))
	if err != nil {
		t.Fatal(err)
	}
	start, end := IDBoundaries(TierCommon)
	lo := start / ReservedModulus * ReservedModulus
	for i, e := range eggs {
		if e.IsShiny {
			continue
		}
		if e.ID < lo || e.ID > end {
			t.Fatalf("egg %d: id %d outside tier 0 range", i, e.ID)
		}
		if e.ID%ReservedModulus != 0 {
			t.Fatalf("egg %d: id %d not reserved", i, e.ID)
		}
		if e.Tier != int(TierReserved) {
			t.Fatalf("egg %d: tier %d", i, e.Tier)
		}
	}
}

func TestConstructDeterministic(t *testing.T) {
	req := Request{Tier: TierRare, GachaType: GachaLegendary, HatchWaves: 25, Amount: 200}
	at := time.Date(2024, 6, 28, 12, 0, 0, 0, time.UTC)
	run := func() []Egg {
		g := NewGenerator(gacha.NewSeededRNG(99))
		g.Now = fixedClock(at)
		eggs, err := g.Construct(req, fixtureCatalog())
		if err != nil {
			t.Fatal(err)
		}
		return eggs
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("seeded runs differ")
	}
	if a[0].Timestamp != at.UnixMilli() {
		t.Fatalf("clock not used: %d", a[0].Timestamp)
	}
}

func TestConstructShinyRate(t *testing.T) {
	const n = 64000
	eggs, err := ConstructEggs(Request{Tier: TierCommon, Amount: n}, fixtureCatalog(), gacha.NewSeededRNG(64))
	if err != nil {
		t.Fatal(err)
	}
	shiny := 0
	for _, e := range eggs {
		if e.IsShiny {
			shiny++
		}
	}
	// expected ~1000
	if shiny < 850 || shiny > 1150 {
		t.Fatalf("shiny count %d far from n/64", shiny)
	}
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{"negative tier", Request{Tier: -1}, ErrInvalidTier},
		{"tier too high", Request{Tier: MaxTier + 1}, ErrInvalidTier},
		{"gacha type", Request{GachaType: 9}, ErrInvalidGachaType},
		{"hatch waves", Request{HatchWaves: -1}, ErrInvalidHatchWaves},
		{"hatch waves too long", Request{HatchWaves: MaxHatchWaves + 1}, ErrInvalidHatchWaves},
		{"amount", Request{Amount: -5}, ErrInvalidAmount},
		{"variant", Request{Shiny: true, VariantTier: 4}, ErrInvalidVariant},
	}
	for _, tc := range cases {
		_, err := ConstructEggs(tc.req, nil, nil)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v want %v", tc.name, err, tc.want)
		}
	}
	if err := (Request{HatchWaves: MaxHatchWaves}).Validate(); err != nil {
		t.Fatalf("%d hatch waves must be accepted: %v", MaxHatchWaves, err)
	}
	// variant is ignored when the batch is not forced shiny
	if err := (Request{VariantTier: 9}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	err := Request{Tier: -1, Amount: -1}.Validate()
	if !errors.Is(err, ErrInvalidTier) || !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("all problems must be reported: %v", err)
	}
}

func TestDefaultHatchWaves(t *testing.T) {
	want := map[Tier]int{
		TierCommon: 10, TierRare: 25, TierEpic: 50, TierLegendary: 100,
		TierReserved: 50, TierRegional: 100, TierParadox: 100,
	}
	for tier, w := range want {
		if got := DefaultHatchWaves(tier); got != w {
			t.Fatalf("%s: got %d want %d", tier, got, w)
		}
	}
}

func TestNames(t *testing.T) {
	if TierReserved.String() != "Manaphy" || Tier(42).String() != "Unknown" {
		t.Fatalf("tier names wrong")
	}
	if GachaShiny.String() != "ShinyGacha" || GachaType(-1).String() != "Unknown" {
		t.Fatalf("gacha names wrong")
	}
}
