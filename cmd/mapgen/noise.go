package main

import (
	"math"
	"math/rand"

	"gridcaster/internal/vmath"
)

// ValueNoise is 2D lattice noise: a seeded random value at every integer
// point, smoothly interpolated in between.
type ValueNoise struct {
	perm   [512]int
	values [256]float64
}

// NewValueNoise creates a new noise generator with the given seed.
func NewValueNoise(seed int64) *ValueNoise {
	vn := &ValueNoise{}
	r := rand.New(rand.NewSource(seed))

	p := r.Perm(256)
	for i := 0; i < 512; i++ {
		vn.perm[i] = p[i&255]
	}
	for i := range vn.values {
		vn.values[i] = r.Float64()
	}
	return vn
}

func (vn *ValueNoise) lattice(x, y int) float64 {
	return vn.values[vn.perm[(x&255)+vn.perm[y&255]]]
}

// smoothstep eases t in [0, 1] so cell edges do not show.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Noise2D returns noise in [0, 1].
func (vn *ValueNoise) Noise2D(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	ix, iy := int(x0), int(y0)
	tx, ty := smoothstep(x-x0), smoothstep(y-y0)

	top := vmath.Lerp(vn.lattice(ix, iy), vn.lattice(ix+1, iy), tx)
	bottom := vmath.Lerp(vn.lattice(ix, iy+1), vn.lattice(ix+1, iy+1), tx)
	return vmath.Lerp(top, bottom, ty)
}

// Fractal sums octaves of noise and normalizes the result to [0, 1].
func (vn *ValueNoise) Fractal(x, y, freq float64, octaves int, lacunarity, persistence float64) float64 {
	var total, maxAmp float64
	amp := 1.0

	for i := 0; i < octaves; i++ {
		total += vn.Noise2D(x*freq, y*freq) * amp
		maxAmp += amp
		freq *= lacunarity
		amp *= persistence
	}
	if maxAmp == 0 {
		return 0
	}
	return total / maxAmp
}
