package blackbody

import (
	"log/slog"

	"github.com/gogpu/blackbody/cmf"
	"github.com/gogpu/blackbody/spectrum"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	// CIE 1931 table, visible range at 1 nm
//	p, err := blackbody.New()
//
//	// Custom table and a coarser sampling grid
//	p, err := blackbody.New(
//	    blackbody.WithTable(tab),
//	    blackbody.WithDomain(spectrum.Domain{Min: 380, Max: 780, Step: 5}),
//	)
type Option func(*options)

type options struct {
	table  *cmf.Table
	domain spectrum.Domain
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		table:  nil, // CIE 1931 if nil
		domain: spectrum.Visible,
	}
}

// WithTable sets the colour-matching table. The table must cover every
// wavelength of the pipeline's domain.
func WithTable(t *cmf.Table) Option {
	return func(o *options) {
		o.table = t
	}
}

// WithDomain sets the wavelength domain the spectrum is sampled on.
// The domain step is also the Δλ weight of the integration.
func WithDomain(d spectrum.Domain) Option {
	return func(o *options) {
		o.domain = d
	}
}

// WithLogger sets a logger for this pipeline only. Without it the
// pipeline logs through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
