package main

import (
	"fmt"
	"math/rand"

	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

// Generator types accepted by -type.
const (
	typeRooms = "rooms"
	typeCaves = "caves"
)

const maxWallID = 5

type room struct{ x, y, w, h int }

func (r room) center() point {
	return point{r.x + r.w/2, r.y + r.h/2}
}

// overlaps reports whether two rooms touch, counting a one tile gap.
func (r room) overlaps(o room) bool {
	return r.x-1 < o.x+o.w && o.x-1 < r.x+r.w &&
		r.y-1 < o.y+o.h && o.y-1 < r.y+r.h
}

// generate builds a walled, fully connected level of the given type.
func generate(kind string, w, h int, seed int64, name string, roomCount int) (*maps.Map, error) {
	rng := rand.New(rand.NewSource(seed))

	var tiles [][]int
	switch kind {
	case typeRooms:
		tiles = generateRooms(w, h, roomCount, rng)
	case typeCaves:
		tiles = generateCaves(w, h, seed)
	default:
		return nil, fmt.Errorf("unknown generator type %q (available: %s, %s)", kind, typeRooms, typeCaves)
	}

	spawn, ok := findSpawn(tiles, w, h)
	if !ok {
		// nothing open at all; clear a chamber in the middle
		spawn = point{w / 2, h / 2}
		for y := spawn.y - 1; y <= spawn.y+1; y++ {
			for x := spawn.x - 1; x <= spawn.x+1; x++ {
				tiles[y][x] = maps.Floor
			}
		}
	}

	ensureConnectivity(tiles, w, h, spawn.x, spawn.y, rng)
	paintVariants(tiles, w, h, seed)

	return maps.New(name, tiles, maps.Spawn{
		X:     float64(spawn.x) + 0.5,
		Y:     float64(spawn.y) + 0.5,
		Angle: openestAngle(tiles, spawn),
	})
}

func solidGrid(w, h int) [][]int {
	tiles := make([][]int, h)
	for y := range tiles {
		tiles[y] = make([]int, w)
		for x := range tiles[y] {
			tiles[y][x] = maps.SolidTile
		}
	}
	return tiles
}

// generateRooms carves rectangular rooms out of solid rock and links each
// one to the previous with an L-shaped corridor.
func generateRooms(w, h, count int, rng *rand.Rand) [][]int {
	tiles := solidGrid(w, h)

	maxW := min(9, w/3)
	maxH := min(9, h/3)

	var rooms []room
	for attempt := 0; attempt < count*20 && len(rooms) < count; attempt++ {
		rw := 3 + rng.Intn(maxW-2)
		rh := 3 + rng.Intn(maxH-2)
		r := room{
			x: 1 + rng.Intn(w-rw-1),
			y: 1 + rng.Intn(h-rh-1),
			w: rw,
			h: rh,
		}

		clash := false
		for _, other := range rooms {
			if r.overlaps(other) {
				clash = true
				break
			}
		}
		if clash {
			continue
		}

		for y := r.y; y < r.y+r.h; y++ {
			for x := r.x; x < r.x+r.w; x++ {
				tiles[y][x] = maps.Floor
			}
		}
		if len(rooms) > 0 {
			carveCorridor(tiles, w, h, rooms[len(rooms)-1].center(), r.center(), rng)
		}
		rooms = append(rooms, r)
	}
	return tiles
}

// carveCorridor joins a and b with one horizontal and one vertical leg,
// in random order.
func carveCorridor(tiles [][]int, w, h int, a, b point, rng *rand.Rand) {
	corner := point{b.x, a.y}
	if rng.Intn(2) == 0 {
		corner = point{a.x, b.y}
	}
	carveLine(tiles, w, h, a, corner)
	carveLine(tiles, w, h, corner, b)
}

// generateCaves thresholds fractal noise into open caverns.
func generateCaves(w, h int, seed int64) [][]int {
	const (
		frequency = 0.12
		openAbove = 0.48
	)

	noise := NewValueNoise(seed)
	tiles := solidGrid(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if noise.Fractal(float64(x), float64(y), frequency, 3, 2.0, 0.5) > openAbove {
				tiles[y][x] = maps.Floor
			}
		}
	}
	return tiles
}

// paintVariants gives interior walls clustered variant ids so the view has
// colored regions. The border stays id 1.
func paintVariants(tiles [][]int, w, h int, seed int64) {
	noise := NewValueNoise(seed ^ 0x5eed)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if tiles[y][x] == maps.Floor {
				continue
			}
			v := noise.Fractal(float64(x), float64(y), 0.08, 2, 2.0, 0.5)
			id := 1 + int(v*maxWallID)
			if id > maxWallID {
				id = maxWallID
			}
			tiles[y][x] = id
		}
	}
	for x := 0; x < w; x++ {
		tiles[0][x] = maps.SolidTile
		tiles[h-1][x] = maps.SolidTile
	}
	for y := 0; y < h; y++ {
		tiles[y][0] = maps.SolidTile
		tiles[y][w-1] = maps.SolidTile
	}
}

// findSpawn searches outward from the center for a floor tile whose whole
// 3x3 neighbourhood is open, then settles for any floor tile.
func findSpawn(tiles [][]int, w, h int) (point, bool) {
	cx, cy := w/2, h/2

	maxR := max(w, h) / 2
	for r := 0; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue // only check the ring perimeter
				}
				x, y := cx+dx, cy+dy
				if x < 1 || x >= w-1 || y < 1 || y >= h-1 {
					continue
				}
				if openNeighbourhood(tiles, x, y) {
					return point{x, y}, true
				}
			}
		}
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if isOpen(tiles[y][x]) {
				return point{x, y}, true
			}
		}
	}
	return point{}, false
}

func openNeighbourhood(tiles [][]int, x, y int) bool {
	for ny := y - 1; ny <= y+1; ny++ {
		for nx := x - 1; nx <= x+1; nx++ {
			if !isOpen(tiles[ny][nx]) {
				return false
			}
		}
	}
	return true
}

// openestAngle faces the spawn down its longest straight corridor.
func openestAngle(tiles [][]int, p point) float64 {
	best, bestRun := 0.0, -1
	for _, d := range neighbours {
		run := 0
		x, y := p.x+d[0], p.y+d[1]
		for y >= 0 && y < len(tiles) && x >= 0 && x < len(tiles[y]) && isOpen(tiles[y][x]) {
			run++
			x, y = x+d[0], y+d[1]
		}
		if run > bestRun {
			best = vmath.NormalizeAngle(vmath.V(float64(d[0]), float64(d[1])).ToAngle())
			bestRun = run
		}
	}
	return best
}
