// Package color holds the colour-space tag shared by the blackbody
// packages and the sRGB transfer functions used when a linear-light
// result has to be written to a display-referred buffer.
package color

// Space identifies how RGB channel values are encoded.
type Space uint8

const (
	// Linear is linear light: channel values are proportional to radiance.
	Linear Space = iota

	// SRGB is display-referred sRGB with the IEC 61966-2-1 transfer curve.
	SRGB
)

// String implements fmt.Stringer.
func (s Space) String() string {
	switch s {
	case Linear:
		return "linear"
	case SRGB:
		return "srgb"
	default:
		return "unknown"
	}
}

// Valid reports whether s is a known colour space.
func (s Space) Valid() bool {
	return s == Linear || s == SRGB
}

// Transcode converts a channel value in [0,1] from one space to another.
func Transcode(v float64, from, to Space) float64 {
	if from == to {
		return v
	}
	if from == Linear {
		return LinearToSRGB(v)
	}
	return SRGBToLinear(v)
}
