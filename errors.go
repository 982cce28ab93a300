package blackbody

import (
	"errors"

	"github.com/gogpu/blackbody/colorimetry"
	"github.com/gogpu/blackbody/internal/planck"
	"github.com/gogpu/blackbody/spectrum"
)

// Errors reported by the pipeline. They are the same values the
// underlying packages return, so errors.Is works at any level.
var (
	// ErrInvalidTemperature: temperature not finite or not > 0.
	ErrInvalidTemperature = planck.ErrInvalidTemperature

	// ErrInvalidWavelength: wavelength not finite or not > 0.
	ErrInvalidWavelength = planck.ErrInvalidWavelength

	// ErrNumericOverflow: Planck's law produced a non-finite value.
	ErrNumericOverflow = planck.ErrNumericOverflow

	// ErrInvalidDomain: malformed wavelength domain.
	ErrInvalidDomain = spectrum.ErrInvalidDomain

	// ErrDomainMismatch: the colour-matching table misses a wavelength.
	ErrDomainMismatch = colorimetry.ErrDomainMismatch

	// ErrDegenerateNormalization: Y is zero or not finite.
	ErrDegenerateNormalization = colorimetry.ErrDegenerateNormalization

	// ErrInvalidGridSize is returned by Mask for sizes < 1.
	ErrInvalidGridSize = errors.New("blackbody: invalid grid size")

	// ErrInvalidPolicy is returned for unknown boundary policies.
	ErrInvalidPolicy = errors.New("blackbody: invalid boundary policy")
)
