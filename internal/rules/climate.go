package rules

// ClimateKind identifies the climate assigned to a hex. Climate selects
// flavor content outside the travel engine and carries no numeric effect
// on movement.
type ClimateKind string

// Climate kinds
const (
	ClimateNone      ClimateKind = "none"
	ClimateTemperate ClimateKind = "temperate"
	ClimateArctic    ClimateKind = "arctic"
	ClimateTropical  ClimateKind = "tropical"
	ClimateArid      ClimateKind = "arid"
	ClimateVolcanic  ClimateKind = "volcanic"
	ClimateMaritime  ClimateKind = "maritime"
)

// AllClimateKinds lists every climate kind except the unassigned sentinel.
var AllClimateKinds = []ClimateKind{
	ClimateTemperate,
	ClimateArctic,
	ClimateTropical,
	ClimateArid,
	ClimateVolcanic,
	ClimateMaritime,
}
