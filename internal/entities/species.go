// Package entities holds the domain types shared by the catalog, the
// progression store and the battle engine.
package entities

// SpeciesID identifies a species template, e.g. "grey-squirrel"
type SpeciesID string

// SpeciesType is the broad family a species belongs to
type SpeciesType string

// Species types
const (
	SpeciesTypeMammal SpeciesType = "mammal"
	SpeciesTypeBird   SpeciesType = "bird"
	SpeciesTypeTree   SpeciesType = "tree"
)

// StatKey names one of the five card stats
type StatKey string

// Stat keys in declaration order
const (
	StatSpeed        StatKey = "speed"
	StatResilience   StatKey = "resilience"
	StatEnergy       StatKey = "energy"
	StatIntelligence StatKey = "intelligence"
	StatHarmony      StatKey = "harmony"
)

// StatKeys lists every stat in declaration order. Tie-breaking rules depend
// on this order.
var StatKeys = []StatKey{
	StatSpeed,
	StatResilience,
	StatEnergy,
	StatIntelligence,
	StatHarmony,
}

var statLabels = map[StatKey]string{
	StatSpeed:        "Speed",
	StatResilience:   "Resilience",
	StatEnergy:       "Energy",
	StatIntelligence: "Intelligence",
	StatHarmony:      "Harmony",
}

// Label returns the display name of the stat
func (k StatKey) Label() string {
	if label, ok := statLabels[k]; ok {
		return label
	}
	return string(k)
}

// Valid reports whether k is one of the five stats
func (k StatKey) Valid() bool {
	_, ok := statLabels[k]
	return ok
}

// StatBlock holds one value per stat
type StatBlock struct {
	Speed        int `json:"speed" yaml:"speed"`
	Resilience   int `json:"resilience" yaml:"resilience"`
	Energy       int `json:"energy" yaml:"energy"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Harmony      int `json:"harmony" yaml:"harmony"`
}

// Get returns the value of the given stat, zero for an unknown key
func (b StatBlock) Get(key StatKey) int {
	switch key {
	case StatSpeed:
		return b.Speed
	case StatResilience:
		return b.Resilience
	case StatEnergy:
		return b.Energy
	case StatIntelligence:
		return b.Intelligence
	case StatHarmony:
		return b.Harmony
	default:
		return 0
	}
}

// Map returns a new StatBlock with fn applied to every stat
func (b StatBlock) Map(fn func(key StatKey, value int) int) StatBlock {
	return StatBlock{
		Speed:        fn(StatSpeed, b.Speed),
		Resilience:   fn(StatResilience, b.Resilience),
		Energy:       fn(StatEnergy, b.Energy),
		Intelligence: fn(StatIntelligence, b.Intelligence),
		Harmony:      fn(StatHarmony, b.Harmony),
	}
}

// SpeciesTemplate is the immutable catalog definition of a species
type SpeciesTemplate struct {
	ID             SpeciesID   `yaml:"id"`
	CommonName     string      `yaml:"common_name"`
	ScientificName string      `yaml:"scientific_name"`
	Type           SpeciesType `yaml:"type"`
	Rarity         int         `yaml:"rarity"`
	BaseStats      StatBlock   `yaml:"base_stats"`
	FunFact        string      `yaml:"fun_fact"`
	Aliases        []string    `yaml:"aliases"`
}

// Label is one classification result for a captured image
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}
