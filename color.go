package blackbody

import (
	"fmt"
	stdcolor "image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/blackbody/colorimetry"
	"github.com/gogpu/blackbody/internal/color"
)

// ColorSpace tags how the channels of an [RGB] are encoded.
type ColorSpace = color.Space

const (
	// Linear is linear light, the output of [Convert].
	Linear = color.Linear

	// SRGB is display-referred sRGB (gamma encoded).
	SRGB = color.SRGB
)

// xyzToRGB maps CIE XYZ to linear RGB with sRGB primaries and D65 white.
var xyzToRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

// RGB is a display colour with every channel in [0, 1].
type RGB struct {
	R, G, B float64
	Space   ColorSpace
}

// Convert applies the fixed XYZ → linear RGB matrix to t and clamps each
// channel to [0, 1] independently. The result is tagged [Linear]; no gamut
// compression or gamma encoding is applied.
func Convert(t colorimetry.XYZ) RGB {
	r, g, b := project(t)
	return RGB{R: clamp01(r), G: clamp01(g), B: clamp01(b), Space: Linear}
}

// project returns the unclamped linear RGB of t.
func project(t colorimetry.XYZ) (r, g, b float64) {
	m := &xyzToRGB
	r = m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z
	g = m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z
	b = m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z
	return r, g, b
}

// clamp01 restricts v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Encode returns c re-encoded in the given colour space.
func (c RGB) Encode(space ColorSpace) RGB {
	if c.Space == space {
		return c
	}
	return RGB{
		R:     clamp01(color.Transcode(c.R, c.Space, space)),
		G:     clamp01(color.Transcode(c.G, c.Space, space)),
		B:     clamp01(color.Transcode(c.B, c.Space, space)),
		Space: space,
	}
}

// Colorful returns c as a go-colorful colour (sRGB encoded).
func (c RGB) Colorful() colorful.Color {
	if c.Space == Linear {
		return colorful.LinearRgb(c.R, c.G, c.B).Clamped()
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
}

// Hex returns the sRGB hex string of c, e.g. "#ffb46b".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// Color converts c to an opaque 8-bit sRGB [stdcolor.NRGBA].
func (c RGB) Color() stdcolor.Color {
	return stdcolor.NRGBA{
		R: color.Byte(c.R, c.Space, SRGB),
		G: color.Byte(c.G, c.Space, SRGB),
		B: color.Byte(c.B, c.Space, SRGB),
		A: 255,
	}
}

// Spread returns the difference between the largest and smallest channel.
// It is 0 for greys and approaches 1 for saturated colours.
func (c RGB) Spread() float64 {
	return math.Max(c.R, math.Max(c.G, c.B)) - math.Min(c.R, math.Min(c.G, c.B))
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%.4f, %.4f, %.4f %s)", c.R, c.G, c.B, c.Space)
}
