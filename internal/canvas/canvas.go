package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// RGBA is one 4-byte pixel.
type RGBA struct {
	R, G, B, A uint8
}

// RGB is a shorthand to create an opaque color.
func RGB(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// Canvas is a fixed-size RGBA8 pixel buffer, row-major with a top-left
// origin. The buffer length never changes after New.
type Canvas struct {
	width  int
	height int
	pix    []byte
}

// New allocates a canvas of width*height pixels, all zero bytes.
// Negative dimensions are treated as zero.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Pixels returns the raw RGBA bytes. Callers must not keep the slice
// across frames if they need a stable copy.
func (c *Canvas) Pixels() []byte { return c.pix }

// SetPixel writes color at (x, y). Out-of-range writes are dropped.
func (c *Canvas) SetPixel(x, y int, color RGBA) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	i := (y*c.width + x) * 4
	c.pix[i+0] = color.R
	c.pix[i+1] = color.G
	c.pix[i+2] = color.B
	c.pix[i+3] = color.A
}

// Pixel returns the color at (x, y), or the zero color when out of range.
func (c *Canvas) Pixel(x, y int) RGBA {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return RGBA{}
	}
	i := (y*c.width + x) * 4
	return RGBA{R: c.pix[i], G: c.pix[i+1], B: c.pix[i+2], A: c.pix[i+3]}
}

// Clear overwrites every pixel with color.
func (c *Canvas) Clear(color RGBA) {
	for i := 0; i < len(c.pix); i += 4 {
		c.pix[i+0] = color.R
		c.pix[i+1] = color.G
		c.pix[i+2] = color.B
		c.pix[i+3] = color.A
	}
}

// DrawRect fills a w x h rectangle at (x, y). Parts outside the canvas
// are dropped; a later write replaces an earlier one.
func (c *Canvas) DrawRect(x, y, w, h int, color RGBA) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.SetPixel(x+dx, y+dy, color)
		}
	}
}

// DrawVLine fills rows y0..y1 inclusive of column x.
func (c *Canvas) DrawVLine(x, y0, y1 int, color RGBA) {
	for y := y0; y <= y1; y++ {
		c.SetPixel(x, y, color)
	}
}

// Image returns an image.RGBA view that shares the canvas bytes.
func (c *Canvas) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    c.pix,
		Stride: c.width * 4,
		Rect:   image.Rect(0, 0, c.width, c.height),
	}
}

// ToImage returns a copy of the canvas as an image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.pix)
	return img
}

// EncodePNG writes the canvas as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// ChangeTracker remembers the last frame a display sink sent so unchanged
// frames can be skipped. A re-render of the same view rewrites every pixel,
// so only the bytes tell whether anything changed.
type ChangeTracker struct {
	last []byte
}

// Changed reports whether c differs from the remembered frame and, if so,
// remembers a copy of it.
func (t *ChangeTracker) Changed(c *Canvas) bool {
	if t.last != nil && bytes.Equal(t.last, c.pix) {
		return false
	}
	t.last = append([]byte(nil), c.pix...)
	return true
}

// Last returns the remembered frame. The slice is never written again, so
// it can be handed to another goroutine.
func (t *ChangeTracker) Last() []byte { return t.last }

// Reset forgets the remembered frame, e.g. after a send was dropped.
func (t *ChangeTracker) Reset() { t.last = nil }
