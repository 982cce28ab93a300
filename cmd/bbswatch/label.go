package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// labelMargin is the distance in pixels from the image corner to the label.
const labelMargin = 8

var printer = message.NewPrinter(language.English)

// formatLabel returns the swatch caption, e.g. "Temperature: 5,778 K".
func formatLabel(p *message.Printer, temperature float64) string {
	return p.Sprintf("Temperature: %d K", int64(math.Round(temperature)))
}

var (
	regularOnce sync.Once
	regularFont *opentype.Font
	regularErr  error
)

func labelFont() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regularFont, regularErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularErr
}

// labelSize picks a font size that scales with the image, within limits.
func labelSize(width int) float64 {
	return math.Max(10, math.Min(32, float64(width)/24))
}

// drawLabel draws text in the top-left corner of dst.
func drawLabel(dst draw.Image, text string, col color.Color) error {
	f, err := labelFont()
	if err != nil {
		return fmt.Errorf("bbswatch: parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    labelSize(dst.Bounds().Dx()),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("bbswatch: create face: %w", err)
	}
	defer func() {
		_ = face.Close()
	}()

	b := dst.Bounds()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(b.Min.X + labelMargin),
			Y: fixed.I(b.Min.Y+labelMargin) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
	return nil
}
