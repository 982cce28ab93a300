// Package colorimetry reduces spectral power distributions to CIE XYZ
// tristimulus values.
package colorimetry

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/blackbody/cmf"
	"github.com/gogpu/blackbody/spectrum"
)

// Errors returned by integration and normalization.
var (
	// ErrDomainMismatch is returned when the colour-matching table does not
	// cover every wavelength of the distribution.
	ErrDomainMismatch = errors.New("colorimetry: wavelength domain mismatch")

	// ErrDegenerateNormalization is returned when Y is zero, negative or
	// not finite.
	ErrDegenerateNormalization = errors.New("colorimetry: degenerate normalization")
)

// XYZ holds CIE 1931 tristimulus values.
type XYZ struct {
	X, Y, Z float64
}

// Integrate sums spd against the colour-matching table:
//
//	X = Σ spd(λ)·x̄(λ)·Δλ
//
// and likewise for Y and Z, with Δλ the sampling step of the distribution's
// domain. Every wavelength of spd must be present in table.
func Integrate(spd *spectrum.SPD, table *cmf.Table) (XYZ, error) {
	if spd == nil || table == nil {
		return XYZ{}, fmt.Errorf("%w: nil distribution or table", ErrDomainMismatch)
	}

	d := spd.Domain()
	if missing, ok := table.Covers(d.Min, d.Max, d.Step); !ok {
		lo, hi := table.Range()
		return XYZ{}, fmt.Errorf("%w: %s has no entry for %d nm (table covers %d–%d nm, distribution %v)",
			ErrDomainMismatch, table.Name(), missing, lo, hi, d)
	}

	step := float64(d.Step)
	var sum XYZ
	for nm, b := range spd.All() {
		w, _ := table.At(nm)
		sum.X += b * w.X * step
		sum.Y += b * w.Y * step
		sum.Z += b * w.Z * step
	}
	return sum, nil
}

// Normalize scales t so that Y == 1: (X/Y, 1, Z/Y).
func Normalize(t XYZ) (XYZ, error) {
	if math.IsNaN(t.Y) || math.IsInf(t.Y, 0) || t.Y <= 0 {
		return XYZ{}, fmt.Errorf("%w: Y = %v", ErrDegenerateNormalization, t.Y)
	}
	n := XYZ{X: t.X / t.Y, Y: 1, Z: t.Z / t.Y}
	if !n.finite() {
		return XYZ{}, fmt.Errorf("%w: %v", ErrDegenerateNormalization, t)
	}
	return n, nil
}

// Chromaticity returns the CIE xy chromaticity coordinates of t.
// It returns (0, 0) when X+Y+Z is zero.
func (t XYZ) Chromaticity() (x, y float64) {
	s := t.X + t.Y + t.Z
	if s == 0 {
		return 0, 0
	}
	return t.X / s, t.Y / s
}

func (t XYZ) finite() bool {
	for _, v := range [3]float64{t.X, t.Y, t.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (t XYZ) String() string {
	return fmt.Sprintf("XYZ(%.6g, %.6g, %.6g)", t.X, t.Y, t.Z)
}
