package rules

// PaceKind identifies the party's chosen travel speed category.
type PaceKind string

// Pace kinds
const (
	PaceSlow   PaceKind = "slow"
	PaceNormal PaceKind = "normal"
	PaceFast   PaceKind = "fast"
)

// AllPaceKinds lists every pace kind.
var AllPaceKinds = []PaceKind{PaceSlow, PaceNormal, PaceFast}

// PaceDefinition holds the static travel rules for a pace kind.
type PaceDefinition struct {
	// HexesPerDay is the base daily movement budget before the weather
	// modifier is applied.
	HexesPerDay int
}

var paceDefinitions = map[PaceKind]PaceDefinition{
	PaceSlow:   {HexesPerDay: 2},
	PaceNormal: {HexesPerDay: 4},
	PaceFast:   {HexesPerDay: 6},
}
