package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gridcaster/internal/maps"
)

func main() {
	genType := flag.String("type", "", "generator type (rooms, caves)")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	size := flag.String("size", "48x32", "map size as WxH")
	name := flag.String("name", "Generated", "map name")
	rooms := flag.Int("rooms", 12, "rooms to place (rooms generator)")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	if *genType == "" {
		fmt.Fprintln(os.Stderr, "Error: -type is required")
		fmt.Fprintln(os.Stderr, "Usage: mapgen -type rooms|caves [-seed N] [-size WxH] [-rooms N] [-name Name] [-out file.json]")
		os.Exit(1)
	}

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	fmt.Fprintf(os.Stderr, "Generating %dx%d %s map %q (seed %d)...\n", w, h, *genType, *name, *seed)

	m, err := generate(*genType, w, h, *seed, *name, *rooms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Spawn: (%.1f, %.1f) facing %.2f rad\n", m.Spawn.X, m.Spawn.Y, m.Spawn.Angle)

	data, err := maps.MarshalMap(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	} else {
		if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", *out, len(data))
	}

	printDistribution(m)
}

func printDistribution(m *maps.Map) {
	counts := m.WallCounts()
	total := m.Width * m.Height
	floor := counts[maps.Floor]

	ids := make([]int, 0, len(counts))
	for id := range counts {
		if id != maps.Floor {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	fmt.Fprintf(os.Stderr, "\nTile distribution:\n")
	fmt.Fprintf(os.Stderr, "  %-10s %5d (%5.1f%%)\n", "floor", floor, float64(floor)/float64(total)*100)
	for _, id := range ids {
		label := "wall " + strconv.Itoa(id)
		fmt.Fprintf(os.Stderr, "  %-10s %5d (%5.1f%%)\n", label, counts[id], float64(counts[id])/float64(total)*100)
	}
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 10 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 10)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 10 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 10)", parts[1])
	}
	return w, h, nil
}
