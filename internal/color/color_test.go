package color

import (
	"math"
	"testing"
)

func TestSRGBToLinearEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.04045, 0.04045 / 12.92},
		{"just above threshold", 0.04046, math.Pow((0.04046+0.055)/1.055, 2.4)},
		{"mid gray", 0.5, math.Pow((0.5+0.055)/1.055, 2.4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBToLinear(tt.input)
			if !floatNear(got, tt.want, 1e-12) {
				t.Errorf("SRGBToLinear(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLinearToSRGBEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"black", 0.0, 0.0},
		{"white", 1.0, 1.0},
		{"threshold", 0.0031308, 0.0031308 * 12.92},
		{"mid gray linear", 0.21404, 1.055*math.Pow(0.21404, 1.0/2.4) - 0.055},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearToSRGB(tt.input)
			if !floatNear(got, tt.want, 1e-12) {
				t.Errorf("LinearToSRGB(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestRoundTrip checks that decode(encode(v)) is the identity on [0,1].
func TestRoundTrip(t *testing.T) {
	for i := 0; i <= 1000; i++ {
		v := float64(i) / 1000
		if got := Transcode(Transcode(v, Linear, SRGB), SRGB, Linear); !floatNear(got, v, 1e-9) {
			t.Errorf("round trip %v = %v", v, got)
		}
	}
}

func TestTransferEndpointsExact(t *testing.T) {
	for _, v := range []float64{1, 1.5} {
		if got := LinearToSRGB(v); got != 1 {
			t.Errorf("LinearToSRGB(%v) = %v, want exactly 1", v, got)
		}
		if got := SRGBToLinear(v); got != 1 {
			t.Errorf("SRGBToLinear(%v) = %v, want exactly 1", v, got)
		}
	}
	if got := Transcode(1, Linear, SRGB); got != 1 {
		t.Errorf("Transcode(1, Linear, SRGB) = %v, want exactly 1", got)
	}
}

func TestTranscodeSameSpace(t *testing.T) {
	for _, s := range []Space{Linear, SRGB} {
		if got := Transcode(0.3, s, s); got != 0.3 {
			t.Errorf("Transcode(0.3, %v, %v) = %v", s, s, got)
		}
	}
}

func TestToU8(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
		{math.NaN(), 0},
		{1.0 / 255, 1},
	}
	for _, tt := range tests {
		if got := ToU8(tt.in); got != tt.want {
			t.Errorf("ToU8(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestLinearToSRGB8Accuracy compares the LUT against math.Pow.
func TestLinearToSRGB8Accuracy(t *testing.T) {
	for i := 0; i <= 10000; i++ {
		l := float64(i) / 10000
		fast := int(LinearToSRGB8(l))
		slow := int(LinearToSRGB8Slow(l))
		if d := fast - slow; d < -1 || d > 1 {
			t.Errorf("LinearToSRGB8(%v) = %d, slow = %d", l, fast, slow)
		}
	}
	if LinearToSRGB8(-1) != 0 || LinearToSRGB8(2) != 255 || LinearToSRGB8(math.NaN()) != 0 {
		t.Error("LinearToSRGB8 does not clamp out-of-range input")
	}
}

func TestByte(t *testing.T) {
	if got := Byte(0.5, Linear, Linear); got != 128 {
		t.Errorf("Byte(0.5, linear, linear) = %d, want 128", got)
	}
	if got := Byte(0.5, Linear, SRGB); got != 188 {
		t.Errorf("Byte(0.5, linear, srgb) = %d, want 188", got)
	}
	if got := Byte(0.5, SRGB, SRGB); got != 128 {
		t.Errorf("Byte(0.5, srgb, srgb) = %d, want 128", got)
	}
}

func TestSpaceString(t *testing.T) {
	if Linear.String() != "linear" || SRGB.String() != "srgb" || Space(9).String() != "unknown" {
		t.Error("unexpected Space names")
	}
	if Space(9).Valid() {
		t.Error("Space(9).Valid() = true")
	}
}

func BenchmarkLinearToSRGB8(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = LinearToSRGB8(float64(i%4096) / 4095)
	}
}

func BenchmarkLinearToSRGB8Slow(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = LinearToSRGB8Slow(float64(i%4096) / 4095)
	}
}

func floatNear(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}
