// Command bbswatch prints the display colour of a blackbody at a given
// temperature and optionally writes a PNG swatch of the colour painted over
// a circular field.
//
// Usage:
//
//	bbswatch -t 5778 -out sun.png
//	bbswatch -sweep 1000:12000:1000
//	bbswatch -config swatch.toml -v
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/blackbody"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if cfg.Verbose {
		blackbody.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	temps, err := cfg.temperatures()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	p, err := blackbody.Default()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	for _, t := range temps {
		if err := swatch(p, cfg, t, len(temps) > 1, stdout); err != nil {
			fmt.Fprintf(stderr, "bbswatch: %v K: %v\n", t, err)
			return 1
		}
	}
	return 0
}

// swatch prints the colour for one temperature and writes its PNG when an
// output path is configured.
func swatch(p *blackbody.Pipeline, cfg config, temperature float64, sweep bool, w io.Writer) error {
	res, err := p.Evaluate(temperature)
	if err != nil {
		return err
	}

	x, y := res.Chromaticity()
	fmt.Fprintf(w, "%-8g K  xy=(%.4f, %.4f)  linear=(%.4f, %.4f, %.4f)  %s",
		temperature, x, y, res.RGB.R, res.RGB.G, res.RGB.B, res.RGB.Hex())
	if res.Clamped() {
		fmt.Fprint(w, "  clamped")
	}
	fmt.Fprintln(w)

	if cfg.Out == "" {
		return nil
	}

	policy, err := blackbody.ParseBoundaryPolicy(cfg.Policy)
	if err != nil {
		return err
	}
	f, err := blackbody.MaskParallel(cfg.Size, policy, &res.RGB, 0)
	if err != nil {
		return err
	}

	space := blackbody.Linear
	if cfg.SRGB {
		space = blackbody.SRGB
	}
	img := blackbody.Render(f, blackbody.RenderOptions{Scale: cfg.Scale, Space: space})
	if cfg.Label {
		if err := drawLabel(img, formatLabel(printer, temperature), color.White); err != nil {
			return err
		}
	}

	path := cfg.Out
	if sweep {
		path = sweepPath(path, temperature)
	}
	if err := blackbody.SavePNG(path, img); err != nil {
		return err
	}
	blackbody.Logger().Debug("bbswatch: wrote swatch", "path", path, "temperature", temperature)
	return nil
}

// sweepPath inserts the temperature before the extension of path:
// "swatch.png" becomes "swatch_5778K.png".
func sweepPath(path string, temperature float64) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%gK%s", strings.TrimSuffix(path, ext), temperature, ext)
}
