package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"gridcaster/internal/canvas"
	"gridcaster/internal/game"
	"gridcaster/internal/maps"
	"gridcaster/internal/raycast"
	"gridcaster/internal/render"
	"gridcaster/internal/vmath"
)

const (
	snapshotWidth  = 400
	snapshotHeight = 300
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools validate <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(args[0]))
	case "viz":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools viz <map-file>")
			os.Exit(1)
		}
		runViz(args[0])
	case "stats":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools stats <map-file>")
			os.Exit(1)
		}
		runStats(args[0])
	case "snapshot":
		os.Exit(runSnapshot(args))
	case "push":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools push <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runPush(args[0]))
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptools all <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runAll(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: maptools <command> <path>

Commands:
  validate <maps-dir>                 Validate all maps in directory
  viz      <map-file>                 Render map as colored ASCII art
  stats    <map-file>                 Show wall distribution and walkable %
  snapshot [-scale N] <map-file> <out.png>
                                      Render the spawn view to a PNG
  push     <maps-dir>                 Copy maps into PostgreSQL (DATABASE_URL)
  all      <maps-dir>                 Run validate + viz + stats for all maps`)
}

// --- validate ---

// checkMap returns the problems found in m, one line each.
func checkMap(m *maps.Map) []string {
	var problems []string

	if !m.IsValidPosition(vmath.V(m.Spawn.X, m.Spawn.Y)) {
		problems = append(problems, fmt.Sprintf("spawn (%.2f,%.2f) is not walkable", m.Spawn.X, m.Spawn.Y))
	}

	// an open border lets rays escape the grid, leaving sky-only columns
	open := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			onEdge := x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
			if onEdge && m.Tiles[y][x] == maps.Floor {
				open++
			}
		}
	}
	if open > 0 {
		problems = append(problems, fmt.Sprintf("%d open tile(s) on the outer border", open))
	}
	return problems
}

func runValidate(dir string) int {
	allMaps, err := maps.LoadMaps(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	errors := 0
	for _, name := range sortedNames(allMaps) {
		m := allMaps[name]
		fmt.Printf("Validating %q...\n", name)

		problems := checkMap(m)
		for _, p := range problems {
			fmt.Printf("  ERROR: %s\n", p)
		}
		errors += len(problems)

		if len(problems) == 0 {
			fmt.Printf("  OK (%dx%d)\n", m.Width, m.Height)
		}
	}

	if errors > 0 {
		fmt.Printf("\n%d error(s) found\n", errors)
		return 1
	}
	fmt.Printf("\nAll %d maps valid\n", len(allMaps))
	return 0
}

func sortedNames(all map[string]*maps.Map) []string {
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// --- viz ---

// trueColor returns the ANSI escape selecting c as foreground.
func trueColor(c canvas.RGBA) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

func runViz(path string) {
	m, err := maps.LoadMap(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%dx%d)\n", m.Name, m.Width, m.Height)

	sx, sy := int(m.Spawn.X), int(m.Spawn.Y)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			id := m.Tiles[y][x]
			switch {
			case x == sx && y == sy:
				fmt.Print("\033[1m@\033[0m")
			case id == maps.Floor:
				fmt.Print("\033[2m.\033[0m")
			default:
				fmt.Print(trueColor(raycast.WallColor(id, raycast.SideNS)), "█", "\033[0m")
			}
		}
		fmt.Println()
	}

	fmt.Printf("\nSpawn: (%.2f,%.2f) facing %.2f rad\n", m.Spawn.X, m.Spawn.Y, m.Spawn.Angle)
}

// --- stats ---

func runStats(path string) {
	m, err := maps.LoadMap(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	total := m.Width * m.Height
	fmt.Printf("%s (%dx%d = %d tiles)\n\n", m.Name, m.Width, m.Height, total)
	if total == 0 {
		return
	}

	counts := m.WallCounts()

	type entry struct {
		id    int
		count int
	}
	var sorted []entry
	for id, count := range counts {
		sorted = append(sorted, entry{id, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].id < sorted[j].id
	})

	for _, e := range sorted {
		label := "floor"
		if e.id != maps.Floor {
			label = fmt.Sprintf("wall %d", e.id)
		}
		pct := float64(e.count) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Printf("  %-10s %4d (%5.1f%%) %s\n", label, e.count, pct, bar)
	}

	walkable := counts[maps.Floor]
	fmt.Printf("\nWalkable: %d/%d (%.1f%%)\n", walkable, total, float64(walkable)/float64(total)*100)
}

// --- snapshot ---

// renderSnapshot draws what a player standing on m's spawn sees.
func renderSnapshot(m *maps.Map, width, height int) *canvas.Canvas {
	p := game.NewPlayer("snapshot", "snapshot", m.Name, vmath.V(m.Spawn.X, m.Spawn.Y), m.Spawn.Angle)
	cv := canvas.New(width, height)
	render.NewScene().Draw(cv, m, p.Snapshot(), nil)
	return cv
}

// scaleImage enlarges src by an integer factor keeping hard pixel edges.
func scaleImage(src *image.RGBA, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func runSnapshot(args []string) int {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	scale := fs.Int("scale", 1, "integer upscale factor")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 2 || *scale < 1 {
		fmt.Fprintln(os.Stderr, "Usage: maptools snapshot [-scale N] <map-file> <out.png>")
		return 1
	}

	m, err := maps.LoadMap(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cv := renderSnapshot(m, snapshotWidth, snapshotHeight)

	out := fs.Arg(1)
	if *scale == 1 {
		err = cv.SavePNG(out)
	} else {
		err = writePNG(out, scaleImage(cv.ToImage(), *scale))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote %s (%dx%d)\n", out, snapshotWidth*(*scale), snapshotHeight*(*scale))
	return 0
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// --- push ---

// copyMaps saves every map from src into dst and returns how many moved.
func copyMaps(src, dst maps.Store) (int, error) {
	names, err := src.ListMaps()
	if err != nil {
		return 0, err
	}
	for i, name := range names {
		m, err := src.LoadMap(name)
		if err != nil {
			return i, fmt.Errorf("load %q: %w", name, err)
		}
		if err := dst.SaveMap(m); err != nil {
			return i, fmt.Errorf("save %q: %w", name, err)
		}
		fmt.Printf("  pushed %q (%dx%d)\n", m.Name, m.Width, m.Height)
	}
	return len(names), nil
}

func runPush(dir string) int {
	src, err := maps.NewDirStore(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer src.Close()

	conn := os.Getenv("DATABASE_URL")
	if conn == "" {
		fmt.Fprintln(os.Stderr, "Error: DATABASE_URL is not set")
		return 1
	}
	dst, err := maps.NewPostgresStore(conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer dst.Close()

	n, err := copyMaps(src, dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error after %d map(s): %v\n", n, err)
		return 1
	}
	fmt.Printf("\nPushed %d map(s)\n", n)
	return 0
}

// --- all ---

func runAll(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory: %v\n", err)
		return 1
	}

	// Run validate first
	fmt.Println("=== VALIDATE ===")
	code := runValidate(dir)
	if code != 0 {
		return code
	}

	// Then viz + stats for each map
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fmt.Printf("\n=== VIZ: %s ===\n", entry.Name())
		runViz(path)
		fmt.Printf("\n=== STATS: %s ===\n", entry.Name())
		runStats(path)
	}

	return 0
}
