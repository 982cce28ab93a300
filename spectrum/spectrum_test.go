package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/blackbody/internal/planck"
)

func TestBuildVisibleDomain(t *testing.T) {
	for _, temp := range []float64{100, 1000, 2700, 5778, 6500, 15000, 1e6} {
		spd, err := Build(temp)
		if err != nil {
			t.Fatalf("Build(%v) error = %v", temp, err)
		}
		if spd.Len() != 471 {
			t.Fatalf("Build(%v).Len() = %d, want 471", temp, spd.Len())
		}

		want := 360
		for nm, v := range spd.All() {
			if nm != want {
				t.Fatalf("Build(%v): wavelength %d, want %d", temp, nm, want)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				t.Fatalf("Build(%v): radiance at %d nm = %v", temp, nm, v)
			}
			want++
		}
		if want != 831 {
			t.Errorf("Build(%v): iteration stopped at %d nm", temp, want-1)
		}
	}
}

func TestBuildWienDisplacement(t *testing.T) {
	for temp := 1000.0; temp <= 10000; temp += 250 {
		spd, err := Build(temp)
		if err != nil {
			t.Fatalf("Build(%v) error = %v", temp, err)
		}

		// Peaks outside the visible range land on the nearest edge.
		want := math.Round(planck.WienPeak(temp) / nanometer)
		want = math.Min(math.Max(want, float64(Visible.Min)), float64(Visible.Max))

		if got := float64(spd.Peak()); math.Abs(got-want) > 1 {
			t.Errorf("Build(%v).Peak() = %v nm, want %v ± 1 nm", temp, got, want)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	a, err := Build(4200)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(4200)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("Build returned the same pointer twice, want independent values")
	}
	if !a.Equal(b) {
		t.Error("Build(4200) twice produced different distributions")
	}

	// Mutating a copy must not leak into the distribution.
	vals := a.Values()
	vals[0] = -1
	if v, _ := a.At(360); v < 0 {
		t.Error("Values() returned the internal slice")
	}

	c, err := Build(4300)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("distributions for different temperatures compare equal")
	}
}

func TestBuildInvalidTemperature(t *testing.T) {
	for _, temp := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		spd, err := Build(temp)
		if !errors.Is(err, ErrInvalidTemperature) {
			t.Errorf("Build(%v) error = %v, want ErrInvalidTemperature", temp, err)
		}
		if spd != nil {
			t.Errorf("Build(%v) returned a distribution alongside an error", temp)
		}
	}
}

func TestBuildDomain(t *testing.T) {
	d := Domain{Min: 400, Max: 700, Step: 10}
	spd, err := BuildDomain(d, 5000)
	if err != nil {
		t.Fatalf("BuildDomain error = %v", err)
	}
	if spd.Len() != 31 {
		t.Errorf("Len() = %d, want 31", spd.Len())
	}
	if spd.Wavelength(30) != 700 {
		t.Errorf("Wavelength(30) = %d, want 700", spd.Wavelength(30))
	}
	if _, ok := spd.At(405); ok {
		t.Error("At(405) ok on a 10 nm grid")
	}

	full, err := Build(5000)
	if err != nil {
		t.Fatal(err)
	}
	v1, _ := spd.At(550)
	v2, _ := full.At(550)
	if v1 != v2 {
		t.Errorf("At(550) = %v on coarse grid, %v on fine grid", v1, v2)
	}
}

func TestDomainValidate(t *testing.T) {
	tests := []struct {
		name string
		d    Domain
		ok   bool
	}{
		{"visible", Visible, true},
		{"single sample", Domain{Min: 500, Max: 500, Step: 1}, true},
		{"zero step", Domain{Min: 360, Max: 830, Step: 0}, false},
		{"negative step", Domain{Min: 360, Max: 830, Step: -1}, false},
		{"reversed", Domain{Min: 830, Max: 360, Step: 1}, false},
		{"zero min", Domain{Min: 0, Max: 830, Step: 1}, false},
		{"ragged", Domain{Min: 360, Max: 830, Step: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidDomain) {
				t.Errorf("Validate() = %v, want ErrInvalidDomain", err)
			}
		})
	}

	if _, err := BuildDomain(Domain{Min: 360, Max: 830}, 5000); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("BuildDomain with zero step error = %v, want ErrInvalidDomain", err)
	}
}

func TestDomainIndex(t *testing.T) {
	if i, ok := Visible.Index(360); !ok || i != 0 {
		t.Errorf("Index(360) = %d, %v", i, ok)
	}
	if i, ok := Visible.Index(830); !ok || i != 470 {
		t.Errorf("Index(830) = %d, %v", i, ok)
	}
	for _, nm := range []int{359, 831, -1} {
		if Visible.Contains(nm) {
			t.Errorf("Contains(%d) = true", nm)
		}
	}
}

func TestInterleaved(t *testing.T) {
	spd, err := BuildDomain(Domain{Min: 500, Max: 502, Step: 1}, 6000)
	if err != nil {
		t.Fatal(err)
	}
	got := spd.Interleaved()
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[0] != 500 || got[2] != 501 || got[4] != 502 {
		t.Errorf("wavelengths = %v, %v, %v", got[0], got[2], got[4])
	}
	if got[1] != float32(spd.Value(0)) {
		t.Errorf("radiance[0] = %v, want %v", got[1], float32(spd.Value(0)))
	}
}

func BenchmarkBuild(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Build(5778)
	}
}
