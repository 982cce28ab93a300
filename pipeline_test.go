package blackbody

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gogpu/blackbody/cmf"
	"github.com/gogpu/blackbody/spectrum"
)

func newPipeline(t testing.TB, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestColorInRange(t *testing.T) {
	p := newPipeline(t)
	for temp := 500.0; temp <= 40000; temp *= 1.07 {
		c, err := p.Color(temp)
		if err != nil {
			t.Fatalf("Color(%v) error = %v", temp, err)
		}
		for i, v := range []float64{c.R, c.G, c.B} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1 {
				t.Fatalf("Color(%v) channel %d = %v", temp, i, v)
			}
		}
	}
}

func TestColorWarmAndCool(t *testing.T) {
	p := newPipeline(t)

	warm, err := p.Color(1000)
	if err != nil {
		t.Fatal(err)
	}
	if !(warm.R > warm.G && warm.G > warm.B) {
		t.Errorf("Color(1000) = %v, want R > G > B", warm)
	}

	cool, err := p.Color(15000)
	if err != nil {
		t.Fatal(err)
	}
	if !(cool.B >= cool.R) {
		t.Errorf("Color(15000) = %v, want B >= R", cool)
	}
}

func TestColorSolarNearWhite(t *testing.T) {
	c, err := newPipeline(t).Color(5778)
	if err != nil {
		t.Fatal(err)
	}
	if s := c.Spread(); s > 0.15 {
		t.Errorf("Color(5778) = %v, spread %v > 0.15", c, s)
	}
}

// TestColorMonotonicBlue checks that the blue channel never decreases as the
// body heats up.
func TestColorMonotonicBlue(t *testing.T) {
	p := newPipeline(t)
	prev := -1.0
	for temp := 1000.0; temp <= 20000; temp += 500 {
		c, err := p.Color(temp)
		if err != nil {
			t.Fatal(err)
		}
		if c.B < prev-1e-12 {
			t.Errorf("Color(%v).B = %v < %v at the previous step", temp, c.B, prev)
		}
		prev = c.B
	}
}

func TestEvaluateIntermediates(t *testing.T) {
	res, err := newPipeline(t).Evaluate(3000)
	if err != nil {
		t.Fatal(err)
	}
	if res.Spectrum.Len() != 471 {
		t.Errorf("Spectrum.Len() = %d, want 471", res.Spectrum.Len())
	}
	if res.Normalized.Y != 1 {
		t.Errorf("Normalized.Y = %v, want 1", res.Normalized.Y)
	}
	if math.Abs(res.Normalized.X-res.Raw.X/res.Raw.Y) > 1e-12 {
		t.Errorf("Normalized.X = %v, want %v", res.Normalized.X, res.Raw.X/res.Raw.Y)
	}
	// 3000 K is outside the sRGB gamut on the red side.
	if !res.Clamped() || res.Unclamped[0] <= 1 {
		t.Errorf("Unclamped = %v, want R > 1 and Clamped()", res.Unclamped)
	}
	if res.RGB.R != 1 {
		t.Errorf("RGB.R = %v, want 1", res.RGB.R)
	}
	x, y := res.Chromaticity()
	if math.Abs(x-0.437) > 0.005 || math.Abs(y-0.404) > 0.005 {
		t.Errorf("Chromaticity() = (%v, %v), want ≈ (0.437, 0.404)", x, y)
	}
}

func TestColorInvalidTemperature(t *testing.T) {
	p := newPipeline(t)
	for _, temp := range []float64{0, -100, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := p.Color(temp); !errors.Is(err, ErrInvalidTemperature) {
			t.Errorf("Color(%v) error = %v, want ErrInvalidTemperature", temp, err)
		}
	}
}

func TestColorDegenerate(t *testing.T) {
	// Every visible sample of a 1 K body underflows to zero.
	_, err := newPipeline(t).Color(1)
	if !errors.Is(err, ErrDegenerateNormalization) {
		t.Errorf("Color(1) error = %v, want ErrDegenerateNormalization", err)
	}
}

// TestFailureDoesNotPoison runs a bad temperature between two good ones.
func TestFailureDoesNotPoison(t *testing.T) {
	p := newPipeline(t)
	before, err := p.Color(4000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Color(-1); err == nil {
		t.Fatal("Color(-1) succeeded")
	}
	after, err := p.Color(4000)
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("Color(4000) changed after a failure: %v -> %v", before, after)
	}
}

func TestNewOptions(t *testing.T) {
	narrow, err := cmf.MustCIE1931().Sub(400, 700)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(WithTable(narrow)); !errors.Is(err, ErrDomainMismatch) {
		t.Errorf("New(narrow table) error = %v, want ErrDomainMismatch", err)
	}

	d := spectrum.Domain{Min: 400, Max: 700, Step: 5}
	p, err := New(WithTable(narrow), WithDomain(d))
	if err != nil {
		t.Fatalf("New(narrow table, narrow domain) error = %v", err)
	}
	if p.Domain() != d || p.Table() != narrow {
		t.Error("options not applied")
	}
	c, err := p.Color(5778)
	if err != nil {
		t.Fatal(err)
	}
	if c.Spread() > 0.2 {
		t.Errorf("Color(5778) on 400–700 nm = %v", c)
	}

	if _, err := New(WithDomain(spectrum.Domain{Min: 360, Max: 830})); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("New(zero step) error = %v, want ErrInvalidDomain", err)
	}
}

func TestConcurrentColor(t *testing.T) {
	p := newPipeline(t)
	want, err := p.Color(2700)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Color(2700)
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- errors.New("concurrent result differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestColorOf(t *testing.T) {
	a, err := ColorOf(6500)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newPipeline(t).Color(6500)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("ColorOf(6500) = %v, pipeline = %v", a, b)
	}
}

func TestPipelineFields(t *testing.T) {
	p := newPipeline(t)

	f, err := p.Field(1800, 128, CenteredGrid)
	if err != nil {
		t.Fatal(err)
	}
	if f.Side() != 128 || f.Count() != 12644 {
		t.Errorf("Field side %d count %d, want 128 and 12644", f.Side(), f.Count())
	}
	want, _ := p.Color(1800)
	if *f.Payload() != want {
		t.Errorf("payload = %v, want %v", *f.Payload(), want)
	}

	sf, err := p.SpectrumField(1800, 100)
	if err != nil {
		t.Fatal(err)
	}
	if sf.Side() != 101 || sf.Count() != 7845 {
		t.Errorf("SpectrumField side %d count %d, want 101 and 7845", sf.Side(), sf.Count())
	}
	if sf.Payload().Temperature() != 1800 {
		t.Errorf("payload temperature = %v", sf.Payload().Temperature())
	}

	if _, err := p.Field(-5, 8, CenteredGrid); !errors.Is(err, ErrInvalidTemperature) {
		t.Errorf("Field(-5) error = %v", err)
	}
}

func BenchmarkColor(b *testing.B) {
	p := newPipeline(b)
	for i := 0; i < b.N; i++ {
		_, _ = p.Color(5778)
	}
}
