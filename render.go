package blackbody

import (
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/blackbody/internal/color"
)

// RGBAQuads flattens a colour field into the float32 R,G,B,A buffer
// consumed by GPU renderers: 4 floats per cell, cell (x, y) at index
// (x*side + y)*4. Inside cells carry the payload encoded in space with
// alpha 1; empty cells are all zero.
func RGBAQuads(f *Field[RGB], space ColorSpace) []float32 {
	side := f.Side()
	out := make([]float32, side*side*4)

	var c RGB
	if p := f.Payload(); p != nil {
		c = p.Encode(space)
	}
	quad := [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}

	for i, in := range f.inside {
		if in {
			copy(out[i*4:i*4+4], quad[:])
		}
	}
	return out
}

// DefaultBackground is the clear colour used by Render: a dark blue.
var DefaultBackground = stdcolor.NRGBA{R: 0, G: 0, B: 102, A: 255}

// RenderOptions controls how a field is rasterised.
type RenderOptions struct {
	// Scale is the number of pixels per cell edge (default 1).
	Scale int

	// Space is the encoding of the output pixels (default Linear, which
	// writes channel values unchanged).
	Space ColorSpace

	// Background fills empty cells. The zero value selects DefaultBackground.
	Background stdcolor.Color
}

// Render rasterises a colour field into an RGBA image of side*Scale pixels.
// Cell (x, y) maps to pixel column x, row y.
func Render(f *Field[RGB], opts RenderOptions) *image.RGBA {
	bg := opts.Background
	if bg == nil {
		bg = DefaultBackground
	}

	side := f.Side()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)

	if p := f.Payload(); p != nil {
		px := stdcolor.RGBA{
			R: color.Byte(p.R, p.Space, opts.Space),
			G: color.Byte(p.G, p.Space, opts.Space),
			B: color.Byte(p.B, p.Space, opts.Space),
			A: 255,
		}
		for pt := range f.All() {
			img.SetRGBA(pt.X, pt.Y, px)
		}
	}

	if opts.Scale <= 1 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, side*opts.Scale, side*opts.Scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("blackbody: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("blackbody: encode %s: %w", path, err)
	}
	return f.Close()
}
