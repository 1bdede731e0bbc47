package raycast

import "gridcaster/internal/canvas"

var wallPalette = map[int][3]uint8{
	1: {255, 0, 0},
	2: {0, 255, 0},
	3: {0, 0, 255},
	4: {255, 255, 0},
	5: {255, 0, 255},
}

var unknownWall = [3]uint8{128, 128, 128}

// EW faces are darkened so corners read without lighting.
var sideBrightness = [...]float64{
	SideNS: 1.0,
	SideEW: 0.7,
}

// WallColor maps a wall id and the side it was hit on to a shaded color.
func WallColor(id int, side Side) canvas.RGBA {
	base, ok := wallPalette[id]
	if !ok {
		base = unknownWall
	}
	b := sideBrightness[side]
	return canvas.RGBA{
		R: uint8(float64(base[0]) * b),
		G: uint8(float64(base[1]) * b),
		B: uint8(float64(base[2]) * b),
		A: 255,
	}
}
