package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/blackbody"
)

// maxSweep bounds the number of temperatures in one sweep.
const maxSweep = 10000

var errUsage = errors.New("bbswatch: invalid arguments")

// config holds the command settings. Values come from defaults, then the
// optional TOML file, then flags.
type config struct {
	Temperature float64 `toml:"temperature"`
	Sweep       string  `toml:"sweep"`
	Size        int     `toml:"size"`
	Policy      string  `toml:"policy"`
	Scale       int     `toml:"scale"`
	SRGB        bool    `toml:"srgb"`
	Out         string  `toml:"out"`
	Label       bool    `toml:"label"`
	Verbose     bool    `toml:"verbose"`

	File string `toml:"-"`
}

func defaultConfig() config {
	return config{
		Temperature: 5778,
		Size:        128,
		Policy:      blackbody.CenteredGrid.String(),
		Scale:       4,
		SRGB:        true,
		Label:       true,
	}
}

func newFlagSet(cfg *config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("bbswatch", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Float64Var(&cfg.Temperature, "t", cfg.Temperature, "temperature in kelvin")
	fs.StringVar(&cfg.Sweep, "sweep", cfg.Sweep, "temperature sweep min:max:step (overrides -t)")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "grid size")
	fs.StringVar(&cfg.Policy, "policy", cfg.Policy, "disc boundary policy: centered-grid or inclusive-diameter")
	fs.IntVar(&cfg.Scale, "scale", cfg.Scale, "pixels per cell in the PNG")
	fs.BoolVar(&cfg.SRGB, "srgb", cfg.SRGB, "gamma-encode PNG pixels as sRGB")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "output PNG file (empty: print colours only)")
	fs.BoolVar(&cfg.Label, "label", cfg.Label, "draw the temperature label on the PNG")
	fs.StringVar(&cfg.File, "config", cfg.File, "TOML config file")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging to stderr")
	return fs
}

// parseArgs resolves the configuration. Flags are parsed twice so that
// values given on the command line win over the config file.
func parseArgs(args []string, out io.Writer) (config, error) {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg, out)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	if cfg.File != "" {
		if err := loadConfig(cfg.File, &cfg); err != nil {
			return cfg, err
		}
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.validate()
}

// loadConfig decodes a TOML file over cfg. Keys absent from the file keep
// their current values.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("bbswatch: read config: %w", err)
	}
	file := cfg.File
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("bbswatch: parse config %s: %w", path, err)
	}
	cfg.File = file
	return nil
}

func (c config) validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: size %d", errUsage, c.Size)
	}
	if c.Scale < 1 {
		return fmt.Errorf("%w: scale %d", errUsage, c.Scale)
	}
	if _, err := blackbody.ParseBoundaryPolicy(c.Policy); err != nil {
		return err
	}
	return nil
}

// temperatures returns the temperatures to evaluate: the sweep if one is
// set, otherwise the single temperature.
func (c config) temperatures() ([]float64, error) {
	if c.Sweep == "" {
		return []float64{c.Temperature}, nil
	}
	return parseSweep(c.Sweep)
}

// parseSweep parses "min:max:step" into the temperatures min, min+step, ...
// up to and including max.
func parseSweep(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: sweep %q, want min:max:step", errUsage, s)
	}

	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sweep %q: %w", errUsage, s, err)
		}
		v[i] = f
	}
	lo, hi, step := v[0], v[1], v[2]
	if !(step > 0) || !(hi >= lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("%w: sweep %q", errUsage, s)
	}

	span := math.Floor((hi-lo)/step + 1e-9)
	if !(span < maxSweep) {
		return nil, fmt.Errorf("%w: sweep %q has more than %d steps", errUsage, s, maxSweep)
	}
	n := int(span) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out, nil
}
