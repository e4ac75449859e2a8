// Package rules holds the static travel rule tables: terrain, weather, and
// pace definitions, the weather roll buckets, and the exhaustion effect
// table. The tables are immutable after construction and are injected into
// the travel engine rather than read as globals, so tests can swap them.
package rules

// Tables bundles the rule tables the travel engine reads. Lookups are total
// over the kind enums; the only defaulting fallbacks are TerrainOrDefault
// (unassigned hex reads as plains) and WeatherOrDefault (unknown weather
// reads as clear), both of which are deliberate and tested.
type Tables struct {
	terrain map[TerrainKind]TerrainDefinition
	weather map[WeatherKind]WeatherDefinition
	pace    map[PaceKind]PaceDefinition
}

// TablesConfig overrides individual tables. Nil fields keep the defaults.
type TablesConfig struct {
	Terrain map[TerrainKind]TerrainDefinition
	Weather map[WeatherKind]WeatherDefinition
	Pace    map[PaceKind]PaceDefinition
}

// NewTables builds a Tables with the given overrides. The input maps are
// copied so the result cannot be mutated through the config.
func NewTables(cfg *TablesConfig) *Tables {
	t := &Tables{
		terrain: terrainDefinitions,
		weather: weatherDefinitions,
		pace:    paceDefinitions,
	}
	if cfg == nil {
		return t
	}
	if cfg.Terrain != nil {
		t.terrain = make(map[TerrainKind]TerrainDefinition, len(cfg.Terrain))
		for k, v := range cfg.Terrain {
			t.terrain[k] = v
		}
	}
	if cfg.Weather != nil {
		t.weather = make(map[WeatherKind]WeatherDefinition, len(cfg.Weather))
		for k, v := range cfg.Weather {
			t.weather[k] = v
		}
	}
	if cfg.Pace != nil {
		t.pace = make(map[PaceKind]PaceDefinition, len(cfg.Pace))
		for k, v := range cfg.Pace {
			t.pace[k] = v
		}
	}
	return t
}

var defaultTables = NewTables(nil)

// DefaultTables returns the compiled-in rule tables.
func DefaultTables() *Tables {
	return defaultTables
}

// Terrain looks up a terrain definition. The second return is false for a
// kind outside the table, which is a programming error at the call sites
// that compute budgets and costs.
func (t *Tables) Terrain(kind TerrainKind) (TerrainDefinition, bool) {
	def, ok := t.terrain[kind]
	return def, ok
}

// TerrainOrDefault looks up a terrain definition, falling back to plains
// for an unknown kind. This is the single sanctioned fallback for hexes
// without an assignment.
func (t *Tables) TerrainOrDefault(kind TerrainKind) TerrainDefinition {
	if def, ok := t.terrain[kind]; ok {
		return def
	}
	return t.terrain[TerrainPlains]
}

// Weather looks up a weather definition.
func (t *Tables) Weather(kind WeatherKind) (WeatherDefinition, bool) {
	def, ok := t.weather[kind]
	return def, ok
}

// WeatherOrDefault looks up a weather definition, falling back to clear for
// an unknown kind. Unknown weather is never expected during normal play; the
// fallback exists so a stale persisted value cannot zero out the budget.
func (t *Tables) WeatherOrDefault(kind WeatherKind) WeatherDefinition {
	if def, ok := t.weather[kind]; ok {
		return def
	}
	return t.weather[WeatherClear]
}

// Pace looks up a pace definition.
func (t *Tables) Pace(kind PaceKind) (PaceDefinition, bool) {
	def, ok := t.pace[kind]
	return def, ok
}

// PaceOrDefault looks up a pace definition, falling back to normal pace for
// an unknown kind.
func (t *Tables) PaceOrDefault(kind PaceKind) PaceDefinition {
	if def, ok := t.pace[kind]; ok {
		return def
	}
	return t.pace[PaceNormal]
}
