package blackbody

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/blackbody/cmf"
	"github.com/gogpu/blackbody/colorimetry"
	"github.com/gogpu/blackbody/spectrum"
)

// Pipeline turns a temperature into a display colour:
//
//	spectrum.Build → colorimetry.Integrate → colorimetry.Normalize → Convert
//
// A Pipeline holds only immutable configuration; it is safe for concurrent
// use and every call builds its own spectrum.
type Pipeline struct {
	table  *cmf.Table
	domain spectrum.Domain
	logger *slog.Logger
}

// New creates a pipeline. The colour-matching table defaults to
// [cmf.CIE1931] and the domain to [spectrum.Visible]. A table that does not
// cover the domain is rejected here rather than on every call.
func New(opts ...Option) (*Pipeline, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.domain.Validate(); err != nil {
		return nil, err
	}
	if o.table == nil {
		t, err := cmf.CIE1931()
		if err != nil {
			return nil, err
		}
		o.table = t
	}
	if missing, ok := o.table.Covers(o.domain.Min, o.domain.Max, o.domain.Step); !ok {
		return nil, fmt.Errorf("%w: %s has no entry for %d nm", ErrDomainMismatch, o.table.Name(), missing)
	}

	return &Pipeline{table: o.table, domain: o.domain, logger: o.logger}, nil
}

var (
	defaultOnce     sync.Once
	defaultPipeline *Pipeline
	defaultErr      error
)

// Default returns a shared pipeline with the default configuration.
func Default() (*Pipeline, error) {
	defaultOnce.Do(func() {
		defaultPipeline, defaultErr = New()
	})
	return defaultPipeline, defaultErr
}

// ColorOf returns the colour of a blackbody at temperature (kelvin) using
// the default pipeline.
func ColorOf(temperature float64) (RGB, error) {
	p, err := Default()
	if err != nil {
		return RGB{}, err
	}
	return p.Color(temperature)
}

func (p *Pipeline) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}

// Table returns the colour-matching table of the pipeline.
func (p *Pipeline) Table() *cmf.Table { return p.table }

// Domain returns the wavelength domain of the pipeline.
func (p *Pipeline) Domain() spectrum.Domain { return p.domain }

// Result holds every intermediate of one pipeline run.
type Result struct {
	Temperature float64
	Spectrum    *spectrum.SPD
	Raw         colorimetry.XYZ // unnormalized sums
	Normalized  colorimetry.XYZ // Y == 1
	Unclamped   [3]float64      // linear RGB before clamping
	RGB         RGB             // clamped, linear
}

// Clamped reports whether any channel was clamped into [0, 1].
func (r *Result) Clamped() bool {
	return r.Unclamped != [3]float64{r.RGB.R, r.RGB.G, r.RGB.B}
}

// Chromaticity returns the CIE xy coordinates of the result.
func (r *Result) Chromaticity() (x, y float64) {
	return r.Raw.Chromaticity()
}

// Spectrum returns the spectral power distribution at temperature.
func (p *Pipeline) Spectrum(temperature float64) (*spectrum.SPD, error) {
	spd, err := spectrum.BuildDomain(p.domain, temperature)
	if err != nil {
		p.log().Warn("blackbody: spectrum rejected", "temperature", temperature, "err", err)
		return nil, err
	}
	return spd, nil
}

// Evaluate runs the full pipeline and returns every intermediate value.
func (p *Pipeline) Evaluate(temperature float64) (*Result, error) {
	spd, err := p.Spectrum(temperature)
	if err != nil {
		return nil, err
	}

	raw, err := colorimetry.Integrate(spd, p.table)
	if err != nil {
		return nil, err
	}

	norm, err := colorimetry.Normalize(raw)
	if err != nil {
		p.log().Warn("blackbody: degenerate spectrum", "temperature", temperature, "Y", raw.Y)
		return nil, fmt.Errorf("blackbody: %v K: %w", temperature, err)
	}

	r, g, b := project(norm)
	res := &Result{
		Temperature: temperature,
		Spectrum:    spd,
		Raw:         raw,
		Normalized:  norm,
		Unclamped:   [3]float64{r, g, b},
		RGB:         Convert(norm),
	}

	l := p.log()
	l.Debug("blackbody: evaluate",
		"temperature", temperature,
		"samples", spd.Len(),
		"xyz", norm,
		"rgb", res.RGB,
		"clamped", res.Clamped())
	return res, nil
}

// Color returns the clamped linear RGB of a blackbody at temperature.
func (p *Pipeline) Color(temperature float64) (RGB, error) {
	res, err := p.Evaluate(temperature)
	if err != nil {
		return RGB{}, err
	}
	return res.RGB, nil
}

// Field returns a circular field of the colour at temperature.
func (p *Pipeline) Field(temperature float64, size int, policy BoundaryPolicy) (*Field[RGB], error) {
	c, err := p.Color(temperature)
	if err != nil {
		return nil, err
	}
	return Mask(size, policy, &c)
}

// SpectrumField returns a circular field of the spectrum at temperature,
// using the inclusive-diameter policy (side size+1).
func (p *Pipeline) SpectrumField(temperature float64, size int) (*Field[spectrum.SPD], error) {
	spd, err := p.Spectrum(temperature)
	if err != nil {
		return nil, err
	}
	return Mask(size, InclusiveDiameter, spd)
}
