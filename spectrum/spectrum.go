// Package spectrum builds blackbody spectral power distributions.
//
// A spectral power distribution (SPD) is the spectral radiance of a
// blackbody sampled at every wavelength of a [Domain]. SPDs are immutable
// values: [Build] returns a fresh one on every call and nothing is shared
// between calls, so SPDs may be passed freely between goroutines.
//
// Example:
//
//	spd, err := spectrum.Build(5778)
//	if err != nil {
//	    return err
//	}
//	peak := spd.Peak() // ≈ 501 nm
package spectrum

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/gogpu/blackbody/internal/planck"
)

// Errors returned by the spectrum builder.
var (
	// ErrInvalidTemperature is returned when the temperature is not finite
	// and strictly positive. It is the same value as the evaluator's error.
	ErrInvalidTemperature = planck.ErrInvalidTemperature

	// ErrNumericOverflow is returned when a radiance sample is not finite.
	ErrNumericOverflow = planck.ErrNumericOverflow

	// ErrInvalidDomain is returned for malformed wavelength domains.
	ErrInvalidDomain = errors.New("spectrum: invalid wavelength domain")
)

// nanometer converts a wavelength in nm to meters.
const nanometer = 1e-9

// Domain is an inclusive range of integer wavelengths in nanometers,
// sampled every Step nanometers.
type Domain struct {
	Min  int
	Max  int
	Step int
}

// Visible is the 360–830 nm range at 1 nm resolution used by the
// CIE 1931 colour-matching functions: 471 samples.
var Visible = Domain{Min: 360, Max: 830, Step: 1}

// Validate reports ErrInvalidDomain if d cannot be sampled.
func (d Domain) Validate() error {
	switch {
	case d.Step <= 0:
		return fmt.Errorf("%w: step %d", ErrInvalidDomain, d.Step)
	case d.Min <= 0:
		return fmt.Errorf("%w: min %d nm", ErrInvalidDomain, d.Min)
	case d.Min > d.Max:
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidDomain, d.Min, d.Max)
	case (d.Max-d.Min)%d.Step != 0:
		return fmt.Errorf("%w: [%d, %d] not divisible by step %d", ErrInvalidDomain, d.Min, d.Max, d.Step)
	}
	return nil
}

// Len returns the number of samples in the domain.
func (d Domain) Len() int {
	if d.Validate() != nil {
		return 0
	}
	return (d.Max-d.Min)/d.Step + 1
}

// Wavelength returns the i-th wavelength of the domain in nanometers.
func (d Domain) Wavelength(i int) int {
	return d.Min + i*d.Step
}

// Index returns the sample index of wavelength nm, or false if nm is not
// a sample point of the domain.
func (d Domain) Index(nm int) (int, bool) {
	if d.Step <= 0 || nm < d.Min || nm > d.Max || (nm-d.Min)%d.Step != 0 {
		return 0, false
	}
	return (nm - d.Min) / d.Step, true
}

// Contains reports whether nm is a sample point of d.
func (d Domain) Contains(nm int) bool {
	_, ok := d.Index(nm)
	return ok
}

// String implements fmt.Stringer.
func (d Domain) String() string {
	return fmt.Sprintf("[%d, %d] nm step %d", d.Min, d.Max, d.Step)
}

// SPD is a complete, immutable spectral power distribution.
type SPD struct {
	domain      Domain
	temperature float64
	values      []float64 // radiance per domain sample, W·sr⁻¹·m⁻³
}

// Build returns the SPD of a blackbody at the given temperature (kelvin)
// over the [Visible] domain.
func Build(temperature float64) (*SPD, error) {
	return BuildDomain(Visible, temperature)
}

// BuildDomain returns the SPD of a blackbody at the given temperature over
// domain d. Either a complete SPD or an error is returned, never a partial
// distribution.
func BuildDomain(d Domain, temperature float64) (*SPD, error) {
	if err := planck.ValidateTemperature(temperature); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	values := make([]float64, d.Len())
	for i := range values {
		nm := d.Wavelength(i)
		b, err := planck.Radiance(float64(nm)*nanometer, temperature)
		if err != nil {
			return nil, fmt.Errorf("spectrum: %d nm: %w", nm, err)
		}
		values[i] = b
	}

	return &SPD{domain: d, temperature: temperature, values: values}, nil
}

// Domain returns the wavelength domain of the distribution.
func (s *SPD) Domain() Domain { return s.domain }

// Temperature returns the temperature the distribution was built for.
func (s *SPD) Temperature() float64 { return s.temperature }

// Len returns the number of samples.
func (s *SPD) Len() int { return len(s.values) }

// Wavelength returns the wavelength in nanometers of sample i.
func (s *SPD) Wavelength(i int) int { return s.domain.Wavelength(i) }

// Value returns the radiance of sample i.
func (s *SPD) Value(i int) float64 { return s.values[i] }

// At returns the radiance at wavelength nm.
// The second result is false if nm is not a sample point.
func (s *SPD) At(nm int) (float64, bool) {
	i, ok := s.domain.Index(nm)
	if !ok {
		return 0, false
	}
	return s.values[i], true
}

// Values returns a copy of the radiance samples in wavelength order.
func (s *SPD) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// All iterates over (wavelength nm, radiance) pairs in ascending order.
func (s *SPD) All() iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, v := range s.values {
			if !yield(s.domain.Wavelength(i), v) {
				return
			}
		}
	}
}

// Peak returns the wavelength in nanometers with the highest radiance.
// Ties resolve to the shorter wavelength.
func (s *SPD) Peak() int {
	best := 0
	for i, v := range s.values {
		if v > s.values[best] {
			best = i
		}
	}
	return s.domain.Wavelength(best)
}

// Max returns the highest radiance sample.
func (s *SPD) Max() float64 {
	m := math.Inf(-1)
	for _, v := range s.values {
		m = max(m, v)
	}
	return m
}

// Equal reports whether two distributions have the same domain and
// identical samples.
func (s *SPD) Equal(o *SPD) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || s.domain != o.domain || len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// Interleaved returns the distribution as a flat float32 slice of
// (wavelength, radiance) pairs, the layout used for GPU storage buffers.
func (s *SPD) Interleaved() []float32 {
	out := make([]float32, 0, 2*len(s.values))
	for i, v := range s.values {
		out = append(out, float32(s.domain.Wavelength(i)), float32(v))
	}
	return out
}
