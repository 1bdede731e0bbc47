package render

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"gridcaster/internal/canvas"
)

// Downsample resamples the canvas to cols x 2*rows pixels, the resolution
// of a cols x rows block of half-block cells. When the sizes already match
// the canvas bytes are copied unchanged.
func Downsample(cv *canvas.Canvas, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	if cols <= 0 || rows <= 0 || cv.Width() == 0 || cv.Height() == 0 {
		return dst
	}
	src := cv.Image()
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// HalfBlocks converts an image with an even pixel height into rows of
// cells, two vertically stacked pixels per cell.
func HalfBlocks(img *image.RGBA) [][]Cell {
	b := img.Bounds()
	rows := b.Dy() / 2
	out := make([][]Cell, rows)
	for cy := 0; cy < rows; cy++ {
		out[cy] = make([]Cell, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			out[cy][x] = Cell{
				Ch: UpperHalf,
				Fg: rgbaAt(img, b.Min.X+x, b.Min.Y+cy*2),
				Bg: rgbaAt(img, b.Min.X+x, b.Min.Y+cy*2+1),
			}
		}
	}
	return out
}

func rgbaAt(img *image.RGBA, x, y int) canvas.RGBA {
	i := img.PixOffset(x, y)
	return canvas.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 255}
}
