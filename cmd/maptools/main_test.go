package main

import (
	"testing"

	"gridcaster/internal/maps"
	"gridcaster/internal/raycast"
)

func TestCheckMap(t *testing.T) {
	open := maps.BorderMap("Leaky", 6, 6, 2)
	open.Tiles[0][3] = maps.Floor
	open.Tiles[5][1] = maps.Floor

	walled := maps.BorderMap("Walled", 6, 6, 2)
	walled.Spawn = maps.Spawn{X: 0.5, Y: 0.5}

	tests := []struct {
		name string
		m    *maps.Map
		want int
	}{
		{"default", maps.DefaultMap(), 0},
		{"open border", open, 1},
		{"spawn in wall", walled, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkMap(tt.m); len(got) != tt.want {
				t.Errorf("checkMap = %q, want %d problem(s)", got, tt.want)
			}
		})
	}
}

func TestRenderSnapshot(t *testing.T) {
	cv := renderSnapshot(maps.DefaultMap(), snapshotWidth, snapshotHeight)
	if cv.Width() != snapshotWidth || cv.Height() != snapshotHeight {
		t.Fatalf("size = %dx%d", cv.Width(), cv.Height())
	}
	cfg := raycast.DefaultConfig()
	if got := cv.Pixel(0, 0); got != cfg.SkyColor {
		t.Errorf("top-left = %v, want sky", got)
	}
	if got := cv.Pixel(0, snapshotHeight-1); got != cfg.FloorColor {
		t.Errorf("bottom-left = %v, want floor", got)
	}
}

func TestScaleImage(t *testing.T) {
	cv := renderSnapshot(maps.DefaultMap(), 40, 30)
	img := scaleImage(cv.ToImage(), 3)
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Fatalf("bounds = %v", b)
	}
	src := cv.ToImage()
	for _, p := range [][2]int{{0, 0}, {20, 15}, {39, 29}} {
		if want, got := src.RGBAAt(p[0], p[1]), img.RGBAAt(p[0]*3+1, p[1]*3+1); want != got {
			t.Errorf("pixel %v: got %v, want %v", p, got, want)
		}
	}
}

func TestCopyMaps(t *testing.T) {
	src, err := maps.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dst, err := maps.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range []*maps.Map{maps.DefaultMap(), maps.BorderMap("Box", 8, 8, 3)} {
		if err := src.SaveMap(m); err != nil {
			t.Fatal(err)
		}
	}

	n, err := copyMaps(src, dst)
	if err != nil || n != 2 {
		t.Fatalf("copyMaps = %d, %v", n, err)
	}
	names, err := dst.ListMaps()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Box" || names[1] != "Default" {
		t.Errorf("destination holds %v", names)
	}
}
