// Package planck evaluates Planck's law for an ideal thermal radiator.
//
// All quantities are SI: wavelengths in meters, temperatures in kelvin and
// spectral radiance in W·sr⁻¹·m⁻³.
package planck

import (
	"errors"
	"fmt"
	"math"
)

// Exact SI 2019 defining constants.
const (
	// C is the speed of light in vacuum (m/s).
	C = 299792458.0

	// H is the Planck constant (J·s).
	H = 6.62607015e-34

	// K is the Boltzmann constant (J/K).
	K = 1.380649e-23

	// WienB is Wien's displacement constant (m·K).
	WienB = 2.8977719e-3
)

// Radiance errors.
var (
	// ErrInvalidTemperature is returned for temperatures that are not
	// finite and strictly positive.
	ErrInvalidTemperature = errors.New("planck: invalid temperature")

	// ErrInvalidWavelength is returned for wavelengths that are not
	// finite and strictly positive.
	ErrInvalidWavelength = errors.New("planck: invalid wavelength")

	// ErrNumericOverflow is returned when an intermediate or the result
	// is not a finite number.
	ErrNumericOverflow = errors.New("planck: numeric overflow")
)

// ValidateTemperature reports ErrInvalidTemperature unless t is finite and > 0.
func ValidateTemperature(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return fmt.Errorf("%w: %v K", ErrInvalidTemperature, t)
	}
	return nil
}

// Radiance returns the spectral radiance of a blackbody at the given
// wavelength (meters) and temperature (kelvin):
//
//	B(λ,T) = (2hc²/λ⁵) / (exp(hc/(λkT)) − 1)
//
// When the exponent overflows the radiance is 0, the physical limit for
// a cold body. A non-finite prefactor or quotient is an error.
func Radiance(wavelength, temperature float64) (float64, error) {
	if err := ValidateTemperature(temperature); err != nil {
		return 0, err
	}
	if math.IsNaN(wavelength) || math.IsInf(wavelength, 0) || wavelength <= 0 {
		return 0, fmt.Errorf("%w: %v m", ErrInvalidWavelength, wavelength)
	}

	a := (2 * H * C * C) / math.Pow(wavelength, 5)
	if math.IsInf(a, 0) || math.IsNaN(a) {
		return 0, fmt.Errorf("%w: prefactor at %v m", ErrNumericOverflow, wavelength)
	}

	x := (H * C) / (wavelength * K * temperature)
	if math.IsNaN(x) {
		return 0, fmt.Errorf("%w: exponent at %v m, %v K", ErrNumericOverflow, wavelength, temperature)
	}

	// Expm1 keeps precision when hc/λkT is tiny (hot bodies, long waves).
	d := math.Expm1(x)
	if math.IsInf(d, 1) {
		return 0, nil
	}

	b := a / d
	if math.IsInf(b, 0) || math.IsNaN(b) || b < 0 {
		return 0, fmt.Errorf("%w: %v m, %v K", ErrNumericOverflow, wavelength, temperature)
	}
	return b, nil
}

// WienPeak returns the wavelength (meters) at which a blackbody of the
// given temperature radiates most strongly. It returns 0 for invalid
// temperatures.
func WienPeak(temperature float64) float64 {
	if ValidateTemperature(temperature) != nil {
		return 0
	}
	return WienB / temperature
}
