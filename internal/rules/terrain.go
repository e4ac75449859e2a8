package rules

// TerrainKind identifies one of the closed set of terrain types a hex can carry.
type TerrainKind string

// Terrain kinds
const (
	TerrainRoad       TerrainKind = "road"
	TerrainPlains     TerrainKind = "plains"
	TerrainForest     TerrainKind = "forest"
	TerrainHills      TerrainKind = "hills"
	TerrainMountains  TerrainKind = "mountains"
	TerrainSwamp      TerrainKind = "swamp"
	TerrainDesert     TerrainKind = "desert"
	TerrainArctic     TerrainKind = "arctic"
	TerrainUnderdark  TerrainKind = "underdark"
	TerrainWater      TerrainKind = "water"
	TerrainJungle     TerrainKind = "jungle"
	TerrainLavaFields TerrainKind = "lava-fields"
	TerrainLavaFlow   TerrainKind = "lava-flow"
)

// AllTerrainKinds lists every terrain kind. Used for exhaustive table checks
// and by the wilderness generator.
var AllTerrainKinds = []TerrainKind{
	TerrainRoad,
	TerrainPlains,
	TerrainForest,
	TerrainHills,
	TerrainMountains,
	TerrainSwamp,
	TerrainDesert,
	TerrainArctic,
	TerrainUnderdark,
	TerrainWater,
	TerrainJungle,
	TerrainLavaFields,
	TerrainLavaFlow,
}

// TerrainDefinition holds the static travel rules for a terrain kind.
type TerrainDefinition struct {
	// TravelModifier is a speed multiplier relative to plains. A value of
	// 1.0 costs one movement point per hex, 0.5 costs two, and so on.
	// A modifier <= 0 marks the terrain impassable without a special
	// means of travel (a vessel for open water, for example).
	TravelModifier float64

	// Hazardous marks terrain where exploration mishaps are more likely.
	Hazardous bool
}

// Impassable reports whether the terrain cannot be entered by normal travel.
func (d TerrainDefinition) Impassable() bool {
	return d.TravelModifier <= 0
}

var terrainDefinitions = map[TerrainKind]TerrainDefinition{
	TerrainRoad:       {TravelModifier: 1.5},
	TerrainPlains:     {TravelModifier: 1.0},
	TerrainForest:     {TravelModifier: 0.5},
	TerrainHills:      {TravelModifier: 0.5},
	TerrainMountains:  {TravelModifier: 0.25, Hazardous: true},
	TerrainSwamp:      {TravelModifier: 1.0 / 3.0, Hazardous: true},
	TerrainDesert:     {TravelModifier: 0.5, Hazardous: true},
	TerrainArctic:     {TravelModifier: 0.5, Hazardous: true},
	TerrainUnderdark:  {TravelModifier: 0.5, Hazardous: true},
	TerrainWater:      {TravelModifier: 0},
	TerrainJungle:     {TravelModifier: 0.25, Hazardous: true},
	TerrainLavaFields: {TravelModifier: 0.25, Hazardous: true},
	TerrainLavaFlow:   {TravelModifier: 0, Hazardous: true},
}
