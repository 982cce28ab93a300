// Package blackbody estimates the perceived colour of an ideal thermal
// radiator at a given temperature.
//
// # Overview
//
// The colour is computed from first principles: Planck's law is sampled
// across the visible spectrum (360–830 nm, 1 nm steps), the spectrum is
// integrated against the CIE 1931 colour-matching functions, the resulting
// XYZ tristimulus values are normalised to Y = 1, and a fixed matrix maps
// them to linear RGB with sRGB primaries. Channels are clamped to [0, 1].
//
// # Quick Start
//
//	import "github.com/gogpu/blackbody"
//
//	c, err := blackbody.ColorOf(5778) // the Sun
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.Hex())
//
// # Architecture
//
// The pipeline is split into small pure packages:
//   - spectrum: spectral power distributions (Planck's law over a domain)
//   - cmf: colour-matching tables (built-in CIE 1931 2° observer)
//   - colorimetry: integration to XYZ and Y-normalisation
//   - blackbody (this package): XYZ → RGB conversion, the Pipeline,
//     circular field masking and rasterisation
//   - gpu: WGSL grid shader, buffer layouts and upload helpers for a
//     WebGPU renderer
//   - cmd/bbswatch: prints colours and writes PNG swatches
//
// # Colour space
//
// [Convert] returns linear light tagged [Linear]. No gamma is applied.
// Call [RGB.Encode] with [SRGB] (or pass SRGB to [Render] and
// [RGBAQuads]) when the consumer expects display-encoded values.
//
// # Circular fields
//
// [Mask] paints one shared payload into the disc inscribed in a square
// grid. Two boundary policies exist: [InclusiveDiameter] (side N+1, center
// N/2) and [CenteredGrid] (side N, center (N-1)/2).
package blackbody

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
