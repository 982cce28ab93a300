package color

import "math"

// linearToSRGBLUT maps linear light quantised to 12 bits to sRGB bytes.
// 4096 entries keep the error below one 8-bit step.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := range linearToSRGBLUT {
		linearToSRGBLUT[i] = ToU8(LinearToSRGB(float64(i) / 4095.0))
	}
}

// LinearToSRGB8 encodes a linear channel value straight to an sRGB byte
// using a lookup table. Input is clamped to [0,1].
func LinearToSRGB8(l float64) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return linearToSRGBLUT[int(l*4095.0+0.5)]
}

// LinearToSRGB8Slow is the math.Pow reference for LinearToSRGB8.
func LinearToSRGB8Slow(l float64) uint8 {
	return ToU8(LinearToSRGB(math.Min(math.Max(l, 0), 1)))
}

// Byte encodes a channel value stored in space from as a byte in space to.
func Byte(v float64, from, to Space) uint8 {
	if from == Linear && to == SRGB {
		return LinearToSRGB8(v)
	}
	return ToU8(Transcode(v, from, to))
}
