package color

import "math"

// SRGBToLinear decodes an sRGB channel value (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4).
// Inputs >= 1 decode to exactly 1.
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	if s >= 1 {
		return 1
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes a linear channel value (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055.
// Inputs >= 1 encode to exactly 1.
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	// 1.055 - 0.055 rounds to just below 1.
	if l >= 1 {
		return 1
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// ToU8 maps a channel value in [0,1] to [0,255] with rounding.
// Values outside [0,1] and NaN are clamped.
func ToU8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}
