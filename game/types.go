// Package game turns server game snapshots into a renderable, pickable scene: a hex map, the
// units standing on it and an index from entity UUID to scene object.
package game

import (
	"math"
)

// TileType is the terrain of a hex.
type TileType string

const (
	TilePlains TileType = "plains"
	TileWater  TileType = "water"
)

// Position is a grid coordinate. X selects the column and Z the row.
type Position struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Hex is one cell of the map.
type Hex struct {
	UUID     string   `json:"uuid" jsonschema:"required"`
	Position Position `json:"position" jsonschema:"required"`
	TileType TileType `json:"tileType,omitempty" jsonschema:"enum=plains,enum=water"`
}

// HexGridMap is the map as the server sends it, indexed grid[x][z]. Cells may be null.
type HexGridMap struct {
	Grid [][]*Hex `json:"grid"`
}

// HexAt returns the hex at (x, z), or nil when the coordinate is outside the grid or the cell is empty.
//
// Parameters:
//   - x: the column
//   - z: the row
//
// Returns:
//   - *Hex: the hex, or nil
func (m *HexGridMap) HexAt(x, z int) *Hex {
	if m == nil || x < 0 || x >= len(m.Grid) {
		return nil
	}
	col := m.Grid[x]
	if z < 0 || z >= len(col) {
		return nil
	}
	return col[z]
}

// Hexes returns every non-null cell in grid order.
func (m *HexGridMap) Hexes() []*Hex {
	if m == nil {
		return nil
	}
	var hexes []*Hex
	for _, col := range m.Grid {
		for _, h := range col {
			if h != nil {
				hexes = append(hexes, h)
			}
		}
	}
	return hexes
}

// Unit is a piece on the board owned by a player.
type Unit struct {
	UUID      string   `json:"uuid" jsonschema:"required"`
	OwnerName string   `json:"ownerName"`
	Position  Position `json:"position" jsonschema:"required"`
}

// Player is a connected player and the units they own.
type Player struct {
	Name  string `json:"name"`
	Units []Unit `json:"units"`
}

// Game is a full snapshot pushed by the server on every gameData event.
type Game struct {
	HexGridMap     HexGridMap `json:"hexGridMap"`
	CurrentPlayers []Player   `json:"currentPlayers"`
	Turn           int        `json:"turn"`
}

// HexToWorld maps a grid coordinate to its world position on the ground plane. Columns are 1.5
// apart and rows √3 apart, with even columns shifted by half a row.
//
// Parameters:
//   - x: the column
//   - z: the row
//
// Returns:
//   - [3]float32: the world position
func HexToWorld(x, z int) [3]float32 {
	zOffset := 0.0
	if x%2 == 0 {
		zOffset = math.Sqrt(3) / 2
	}
	return [3]float32{
		float32(float64(x) * 1.5),
		0,
		float32(float64(z)*math.Sqrt(3) + zOffset),
	}
}
