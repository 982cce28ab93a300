package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
)

var (
	// ErrNoDrawContext is returned by Present when dc is nil.
	ErrNoDrawContext = errors.New("gpu: nil draw context")

	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("gpu: draw context has no texture creator")

	// ErrEmptyImage is returned by Present for a nil or empty image.
	ErrEmptyImage = errors.New("gpu: empty image")

	// ErrNoTexture is returned when the texture creator returns neither a
	// texture nor an error.
	ErrNoTexture = errors.New("gpu: texture creator returned no texture")
)

// Present uploads img as a texture and draws it at (x, y) through dc, the
// path used by windowed hosts that render images rather than raw grids.
// The returned texture is owned by the caller, who destroys it once the
// frame that draws it has completed.
func Present(dc gpucontext.TextureDrawer, img *image.RGBA, x, y float32) (gpucontext.Texture, error) {
	if dc == nil {
		return nil, ErrNoDrawContext
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return nil, ErrNoTextureCreator
	}

	b := img.Bounds()
	tex, err := creator.NewTextureFromRGBA(b.Dx(), b.Dy(), rgbaPixels(img))
	if err != nil {
		return nil, fmt.Errorf("gpu: create texture: %w", err)
	}
	if tex == nil {
		return nil, ErrNoTexture
	}
	if err := dc.DrawTexture(tex, x, y); err != nil {
		return tex, fmt.Errorf("gpu: draw texture: %w", err)
	}
	return tex, nil
}

// rgbaPixels returns the pixels of img as tightly packed rows.
func rgbaPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	row := b.Dx() * 4
	if img.Stride == row && img.Rect.Min == (image.Point{}) {
		return img.Pix[:row*b.Dy()]
	}
	out := make([]byte, 0, row*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[i:i+row]...)
	}
	return out
}
