package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"gridcaster/internal/maps"
)

type point struct{ x, y int }

var neighbours = [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func isOpen(tile int) bool {
	return tile == maps.Floor
}

// floodFill returns the set of floor tiles reachable from (sx, sy).
func floodFill(tiles [][]int, w, h, sx, sy int) map[point]bool {
	region := make(map[point]bool)
	if !isOpen(tiles[sy][sx]) {
		return region
	}

	stack := []point{{sx, sy}}
	region[point{sx, sy}] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighbours {
			nx, ny := p.x+d[0], p.y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			np := point{nx, ny}
			if region[np] || !isOpen(tiles[ny][nx]) {
				continue
			}
			region[np] = true
			stack = append(stack, np)
		}
	}
	return region
}

// ensureConnectivity joins every floor pocket to the region reachable from
// spawn. Pockets smaller than fillThreshold are walled up instead.
func ensureConnectivity(tiles [][]int, w, h, spawnX, spawnY int, rng *rand.Rand) {
	mainRegion := floodFill(tiles, w, h, spawnX, spawnY)

	visited := make(map[point]bool)
	for p := range mainRegion {
		visited[p] = true
	}

	var islands []map[point]bool
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			p := point{x, y}
			if visited[p] || !isOpen(tiles[y][x]) {
				continue
			}
			island := floodFill(tiles, w, h, x, y)
			for ip := range island {
				visited[ip] = true
			}
			islands = append(islands, island)
		}
	}

	if len(islands) == 0 {
		fmt.Fprintf(os.Stderr, "Connectivity: fully connected (%d floor tiles)\n", len(mainRegion))
		return
	}

	const fillThreshold = 6

	// wall up small pockets first so no corridor runs through one
	var large []map[point]bool
	filled := 0
	for _, island := range islands {
		if len(island) < fillThreshold {
			for p := range island {
				tiles[p.y][p.x] = maps.SolidTile
			}
			filled += len(island)
			continue
		}
		large = append(large, island)
	}

	for _, island := range large {
		carveConnection(tiles, w, h, mainRegion, island, rng)
		for p := range island {
			// the corridor and anything it touched joins the main region
			for fp := range floodFill(tiles, w, h, p.x, p.y) {
				mainRegion[fp] = true
			}
			break
		}
	}

	fmt.Fprintf(os.Stderr, "Connectivity: connected %d pockets, walled up %d (%d tiles)\n",
		len(large), len(islands)-len(large), filled)
}

// regionEdge returns the tiles of region that touch a wall.
func regionEdge(tiles [][]int, w, h int, region map[point]bool) []point {
	var edge []point
	for p := range region {
		for _, d := range neighbours {
			nx, ny := p.x+d[0], p.y+d[1]
			if nx >= 0 && nx < w && ny >= 0 && ny < h && !isOpen(tiles[ny][nx]) {
				edge = append(edge, p)
				break
			}
		}
	}
	return edge
}

// carveConnection digs a corridor between the closest edge tiles of the
// two regions.
func carveConnection(tiles [][]int, w, h int, mainRegion, island map[point]bool, rng *rand.Rand) {
	islandEdge := regionEdge(tiles, w, h, island)
	mainEdge := regionEdge(tiles, w, h, mainRegion)

	// sample large edges to keep the search quadratic in a constant
	if len(islandEdge) > 200 {
		rng.Shuffle(len(islandEdge), func(i, j int) { islandEdge[i], islandEdge[j] = islandEdge[j], islandEdge[i] })
		islandEdge = islandEdge[:200]
	}
	if len(mainEdge) > 500 {
		rng.Shuffle(len(mainEdge), func(i, j int) { mainEdge[i], mainEdge[j] = mainEdge[j], mainEdge[i] })
		mainEdge = mainEdge[:500]
	}

	bestDist := math.MaxInt
	var from, to point
	for _, ip := range islandEdge {
		for _, mp := range mainEdge {
			if d := abs(ip.x-mp.x) + abs(ip.y-mp.y); d < bestDist {
				bestDist, from, to = d, ip, mp
			}
		}
	}
	carveLine(tiles, w, h, from, to)
}

// carveLine opens every tile on a 4-connected path from a to b, stepping
// along the longer axis first.
func carveLine(tiles [][]int, w, h int, a, b point) {
	x, y := a.x, a.y
	for x != b.x || y != b.y {
		if abs(b.x-x) >= abs(b.y-y) {
			x += sign(b.x - x)
		} else {
			y += sign(b.y - y)
		}
		if x < 1 || x >= w-1 || y < 1 || y >= h-1 {
			continue
		}
		tiles[y][x] = maps.Floor
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
