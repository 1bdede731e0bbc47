// Command play explores a map locally: in a desktop window, in the
// terminal, or headless for benchmarking and screenshots.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gridcaster/internal/maps"
)

const (
	modeWindow   = "window"
	modeTerm     = "term"
	modeHeadless = "headless"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	mapPath := flag.String("map", "", "map file (default: built-in map)")
	mode := flag.String("mode", modeWindow, "window, term or headless")
	width := flag.Int("width", 400, "render width in pixels")
	height := flag.Int("height", 300, "render height in pixels")
	scale := flag.Int("scale", 2, "window scale factor")
	frames := flag.Int("frames", 120, "frames to render in headless mode")
	out := flag.String("out", "", "write the last headless frame to this PNG")
	flag.Parse()

	if *width <= 0 || *height <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -width and -height must be positive")
		os.Exit(1)
	}

	m, err := loadMap(*mapPath)
	if err != nil {
		log.Fatalf("Failed to load map: %v", err)
	}
	log.Printf("Map loaded: %s (%dx%d)", m.Name, m.Width, m.Height)

	s := newSession(m, *width, *height)

	switch *mode {
	case modeWindow:
		err = runWindow(s, *scale)
	case modeTerm:
		err = runTerm(s)
	case modeHeadless:
		err = runHeadless(s, *frames, *out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q (available: %s, %s, %s)\n", *mode, modeWindow, modeTerm, modeHeadless)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s mode: %v", *mode, err)
	}
}

func loadMap(path string) (*maps.Map, error) {
	if path == "" {
		return maps.DefaultMap(), nil
	}
	return maps.LoadMap(path)
}
