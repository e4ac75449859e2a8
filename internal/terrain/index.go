// Package terrain provides the sparse per-hex terrain and climate index and
// a noise-based wilderness generator for seeding it.
package terrain

import (
	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/rules"
)

// TerrainAssignment is one hex's terrain, as loaded from or handed to the
// map annotation collaborator.
type TerrainAssignment struct {
	Col     int               `json:"col"`
	Row     int               `json:"row"`
	Terrain rules.TerrainKind `json:"terrain"`
}

// ClimateAssignment is one hex's climate.
type ClimateAssignment struct {
	Col     int               `json:"col"`
	Row     int               `json:"row"`
	Climate rules.ClimateKind `json:"climate"`
}

// Index is the sparse hex-to-terrain/climate assignment store. Absent
// terrain reads as plains; absent climate reads as none. The index is plain
// in-memory state with no synchronization: it is owned by one map session,
// matching the engine's ownership model. Persistence is the caller's
// responsibility.
type Index struct {
	terrain map[entities.HexCoord]rules.TerrainKind
	climate map[entities.HexCoord]rules.ClimateKind
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		terrain: make(map[entities.HexCoord]rules.TerrainKind),
		climate: make(map[entities.HexCoord]rules.ClimateKind),
	}
}

// SetTerrain assigns a terrain kind to a hex.
func (i *Index) SetTerrain(col, row int, kind rules.TerrainKind) {
	i.terrain[entities.HexCoord{Col: col, Row: row}] = kind
}

// ClearTerrain removes a hex's terrain assignment, reverting it to plains.
func (i *Index) ClearTerrain(col, row int) {
	delete(i.terrain, entities.HexCoord{Col: col, Row: row})
}

// TerrainAt returns the terrain assigned to a hex. Unassigned hexes are
// plains; this is the single sanctioned defaulting path for terrain.
func (i *Index) TerrainAt(col, row int) rules.TerrainKind {
	if kind, ok := i.terrain[entities.HexCoord{Col: col, Row: row}]; ok {
		return kind
	}
	return rules.TerrainPlains
}

// SetClimate assigns a climate kind to a hex.
func (i *Index) SetClimate(col, row int, kind rules.ClimateKind) {
	i.climate[entities.HexCoord{Col: col, Row: row}] = kind
}

// ClearClimate removes a hex's climate assignment.
func (i *Index) ClearClimate(col, row int) {
	delete(i.climate, entities.HexCoord{Col: col, Row: row})
}

// ClimateAt returns the climate assigned to a hex, or ClimateNone when
// unassigned. Unlike terrain, climate has no rendering effect on the engine,
// so there is no baseline kind to fall back to.
func (i *Index) ClimateAt(col, row int) rules.ClimateKind {
	if kind, ok := i.climate[entities.HexCoord{Col: col, Row: row}]; ok {
		return kind
	}
	return rules.ClimateNone
}

// LoadTerrainData replaces every terrain assignment with the given list.
func (i *Index) LoadTerrainData(assignments []TerrainAssignment) {
	i.terrain = make(map[entities.HexCoord]rules.TerrainKind, len(assignments))
	for _, a := range assignments {
		i.terrain[entities.HexCoord{Col: a.Col, Row: a.Row}] = a.Terrain
	}
}

// LoadClimateData replaces every climate assignment with the given list.
func (i *Index) LoadClimateData(assignments []ClimateAssignment) {
	i.climate = make(map[entities.HexCoord]rules.ClimateKind, len(assignments))
	for _, a := range assignments {
		i.climate[entities.HexCoord{Col: a.Col, Row: a.Row}] = a.Climate
	}
}

// TerrainCount returns the number of explicit terrain assignments.
func (i *Index) TerrainCount() int {
	return len(i.terrain)
}
