// Package raycast renders a first-person view of a tile grid into a canvas
// by casting one grid-DDA ray per screen column.
package raycast

import (
	"math"

	"gridcaster/internal/canvas"
	"gridcaster/internal/maps"
	"gridcaster/internal/vmath"
)

const (
	// DefaultMaxSteps bounds the number of cells one ray may cross.
	DefaultMaxSteps = 100

	// Ray components smaller than this are treated as zero.
	epsilon = 1e-5
	// Stand-in for an infinite delta distance on an axis the ray never crosses.
	farAway = 1e30
)

// Side tells which kind of grid boundary a ray crossed last.
type Side uint8

const (
	SideNS Side = iota // crossed by stepping along X
	SideEW             // crossed by stepping along Y
)

func (s Side) String() string {
	if s == SideEW {
		return "EW"
	}
	return "NS"
}

// Camera is the viewpoint snapshot for one frame. Direction and Plane are
// not required to be unit length; their ratio sets the field of view.
type Camera struct {
	Position  vmath.Vec2
	Direction vmath.Vec2
	Plane     vmath.Vec2
	Pitch     float64
}

// RayHit is the first wall a ray met.
type RayHit struct {
	Distance float64 // perpendicular to the camera plane, never below MinDistance
	WallID   int
	Side     Side
}

// Config holds the caster tunables.
type Config struct {
	SkyColor    canvas.RGBA
	FloorColor  canvas.RGBA
	PitchScale  float64 // fraction of the screen height per unit of pitch
	PitchCap    float64 // max horizon shift in pixels
	MaxSteps    int
	MinDistance float64
}

// DefaultConfig returns the stock sky-blue / forest-green setup.
func DefaultConfig() Config {
	return Config{
		SkyColor:    canvas.RGBA{R: 135, G: 206, B: 235, A: 255},
		FloorColor:  canvas.RGBA{R: 34, G: 139, B: 34, A: 255},
		PitchScale:  0.3,
		PitchCap:    200,
		MaxSteps:    DefaultMaxSteps,
		MinDistance: 0.01,
	}
}

// Caster renders frames. It holds no per-frame state, so one Caster may be
// shared by any number of sessions as long as each renders into its own canvas.
type Caster struct {
	cfg Config
}

// NewCaster builds a caster; zero-valued step and distance limits fall back
// to the defaults.
func NewCaster(cfg Config) *Caster {
	def := DefaultConfig()
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = def.MaxSteps
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}
	if cfg.PitchCap <= 0 {
		cfg.PitchCap = def.PitchCap
	}
	return &Caster{cfg: cfg}
}

// Config returns the effective configuration.
func (c *Caster) Config() Config { return c.cfg }

// Render draws one full frame: sky, then for every column a floor run and
// a wall slice.
func (c *Caster) Render(cv *canvas.Canvas, cam Camera, m *maps.Map) {
	cv.Clear(c.cfg.SkyColor)
	horizon := c.Horizon(cam.Pitch, cv.Height())
	for x := 0; x < cv.Width(); x++ {
		c.DrawColumn(cv, cam, m, horizon, x)
	}
}

// Horizon returns the screen row the view is centered on for a pitch.
func (c *Caster) Horizon(pitch float64, height int) int {
	h := float64(height)
	offset := int(vmath.Clamp(pitch*h*c.cfg.PitchScale, -c.cfg.PitchCap, c.cfg.PitchCap))
	return vmath.ClampInt(height/2+offset, 0, height-1)
}

// DrawColumn casts the ray of screen column x and paints its floor and wall
// rows. It only writes column x and reads nothing the other columns write.
// A column whose ray hits nothing is left as it is.
func (c *Caster) DrawColumn(cv *canvas.Canvas, cam Camera, m *maps.Map, horizon, x int) {
	w, h := cv.Width(), cv.Height()
	if w == 0 || h == 0 {
		return
	}
	cameraX := 2*float64(x)/float64(w) - 1
	rayDir := cam.Direction.Add(cam.Plane.Scale(cameraX))

	hit, ok := c.CastRay(cam.Position, rayDir, m)
	if !ok {
		return
	}

	lineHeight := int(float64(h) / math.Max(hit.Distance, c.cfg.MinDistance))
	if lineHeight > 2*h {
		lineHeight = 2 * h
	}
	wallHalf := lineHeight / 2
	drawStart := vmath.ClampInt(horizon-wallHalf, 0, h-1)
	drawEnd := vmath.ClampInt(horizon+wallHalf, 0, h-1)

	if drawEnd < h-1 {
		cv.DrawVLine(x, drawEnd+1, h-1, c.cfg.FloorColor)
	}
	cv.DrawVLine(x, drawStart, drawEnd, WallColor(hit.WallID, hit.Side))
}

// CastRay walks the grid from start along dir until it enters a wall cell.
// It reports false for a degenerate direction, when the ray leaves the grid,
// or when MaxSteps cells were crossed without a hit.
func (c *Caster) CastRay(start, dir vmath.Vec2, m *maps.Map) (RayHit, bool) {
	if math.Abs(dir.X) < epsilon && math.Abs(dir.Y) < epsilon {
		return RayHit{}, false
	}

	mapX, mapY := int(start.X), int(start.Y)

	deltaX, deltaY := farAway, farAway
	if math.Abs(dir.X) >= epsilon {
		deltaX = math.Abs(1 / dir.X)
	}
	if math.Abs(dir.Y) >= epsilon {
		deltaY = math.Abs(1 / dir.Y)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dir.X < 0 {
		stepX, sideX = -1, (start.X-float64(mapX))*deltaX
	} else {
		stepX, sideX = 1, (float64(mapX)+1-start.X)*deltaX
	}
	if dir.Y < 0 {
		stepY, sideY = -1, (start.Y-float64(mapY))*deltaY
	} else {
		stepY, sideY = 1, (float64(mapY)+1-start.Y)*deltaY
	}

	side := SideNS
	for i := 0; i < c.cfg.MaxSteps; i++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideNS
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideEW
		}

		if !m.InBounds(mapX, mapY) {
			return RayHit{}, false
		}

		id := m.Get(mapX, mapY)
		if id == maps.Floor {
			continue
		}

		var perp float64
		if side == SideNS {
			perp = (float64(mapX) - start.X + float64(1-stepX)/2) / dir.X
		} else {
			perp = (float64(mapY) - start.Y + float64(1-stepY)/2) / dir.Y
		}
		return RayHit{
			Distance: math.Max(math.Abs(perp), c.cfg.MinDistance),
			WallID:   id,
			Side:     side,
		}, true
	}
	return RayHit{}, false
}
