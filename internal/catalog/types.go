// types.go
package catalog

// Species is one row of the species table. EggType is nil for species that
// never hatch from eggs.
type Species struct {
	Key     int    `yaml:"key" json:"key"`
	Name    string `yaml:"name" json:"name"`
	EggType *int   `yaml:"eggType,omitempty" json:"eggType,omitempty"`
}

// Eligible reports whether the species carries egg metadata.
func (s Species) Eligible() bool { return s.EggType != nil }

// Catalog is an ordered species table, sorted by Key.
type Catalog []Species

// rawFile mirrors the eggTypes.json document shipped with the game data:
//
//	{"eggTypes": {"25": {"name": "PIKACHU", "isEgg": {"eggType": 1}}, ...}}
type rawFile struct {
	EggTypes map[string]rawEntry `yaml:"eggTypes" json:"eggTypes"`
}

type rawEntry struct {
	Name  string    `yaml:"name" json:"name"`
	IsEgg *rawIsEgg `yaml:"isEgg" json:"isEgg"`
}

type rawIsEgg struct {
	EggType int `yaml:"eggType" json:"eggType"`
}
