package maps

import (
	"fmt"

	"gridcaster/internal/vmath"
)

const (
	// Floor is the tile id of open space.
	Floor = 0
	// SolidTile is what every query outside the grid reports.
	SolidTile = 1
)

// Spawn is where new players appear and which way they face.
type Spawn struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Map is a rectangular tile grid. Tiles[y][x] is 0 for floor or a wall
// variant id. A Map is read-only once constructed.
type Map struct {
	Name   string
	Width  int
	Height int
	Spawn  Spawn
	Tiles  [][]int
}

// New builds a map from rows of tile ids, validating the grid.
func New(name string, rows [][]int, spawn Spawn) (*Map, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	m := &Map{Name: name, Width: width, Height: height, Spawn: spawn, Tiles: rows}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the grid invariants: exactly Height rows of Width
// non-negative ids.
func (m *Map) Validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("negative size %dx%d", m.Width, m.Height)
	}
	if len(m.Tiles) != m.Height {
		return fmt.Errorf("tile rows %d != declared height %d", len(m.Tiles), m.Height)
	}
	for y, row := range m.Tiles {
		if len(row) != m.Width {
			return fmt.Errorf("row %d has %d tiles, expected %d", y, len(row), m.Width)
		}
		for x, id := range row {
			if id < 0 {
				return fmt.Errorf("tile (%d,%d) has negative id %d", x, y, id)
			}
		}
	}
	return nil
}

// InBounds reports whether (x, y) is a cell of the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Get returns the tile id at (x, y). Anything outside the grid is solid.
func (m *Map) Get(x, y int) int {
	if !m.InBounds(x, y) {
		return SolidTile
	}
	return m.Tiles[y][x]
}

// IsWall truncates p toward zero and reports whether that cell is solid.
func (m *Map) IsWall(p vmath.Vec2) bool {
	return m.Get(int(p.X), int(p.Y)) != Floor
}

// IsValidPosition reports whether a player may stand at p. Negative
// coordinates are rejected before truncation: int(-0.5) would land on 0.
func (m *Map) IsValidPosition(p vmath.Vec2) bool {
	if p.X < 0 || p.Y < 0 {
		return false
	}
	return !m.IsWall(p)
}

// WallCounts returns the number of cells per tile id.
func (m *Map) WallCounts() map[int]int {
	counts := make(map[int]int)
	for _, row := range m.Tiles {
		for _, id := range row {
			counts[id]++
		}
	}
	return counts
}
