package game

import (
	"sort"

	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

// World wraps multiple Maps and provides game-level helpers.
type World struct {
	Maps       map[string]*maps.Map
	DefaultMap string
}

// NewWorld creates a world from the given map registry. An unknown default
// name falls back to the alphabetically first map.
func NewWorld(allMaps map[string]*maps.Map, defaultMap string) *World {
	if _, ok := allMaps[defaultMap]; !ok {
		names := make([]string, 0, len(allMaps))
		for name := range allMaps {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > 0 {
			defaultMap = names[0]
		}
	}
	return &World{Maps: allMaps, DefaultMap: defaultMap}
}

// SpawnPoint returns the default map's name, spawn position and heading.
func (w *World) SpawnPoint() (string, vmath.Vec2, float64) {
	m := w.Maps[w.DefaultMap]
	if m == nil {
		return w.DefaultMap, vmath.Vec2{}, 0
	}
	return w.DefaultMap, vmath.V(m.Spawn.X, m.Spawn.Y), m.Spawn.Angle
}

// CanMoveTo checks if the destination is walkable on the named map.
func (w *World) CanMoveTo(mapName string, p vmath.Vec2) bool {
	m, ok := w.Maps[mapName]
	if !ok {
		return false
	}
	return m.IsValidPosition(p)
}

// GetMap returns the map with the given name, or nil.
func (w *World) GetMap(name string) *maps.Map {
	return w.Maps[name]
}
