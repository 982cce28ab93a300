// Package cmf provides colour-matching function tables.
//
// A [Table] maps integer wavelengths (nm) to the three colour-matching
// weights x̄, ȳ, z̄. Tables are read-only once constructed and safe for
// concurrent use. [CIE1931] returns the built-in CIE 1931 2° observer over
// 360–830 nm, loaded once per process.
package cmf

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
)

// ErrInvalidTable is returned when table data cannot be used.
var ErrInvalidTable = errors.New("cmf: invalid table")

// Weights holds the colour-matching weights at one wavelength.
type Weights struct {
	X, Y, Z float64
}

// Table is a read-only colour-matching function table.
type Table struct {
	name    string
	weights map[int]Weights
	min     int
	max     int
}

// New creates a table from a wavelength → weights map. The map is copied.
// Weights must be finite and non-negative.
func New(name string, entries map[int]Weights) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalidTable)
	}

	t := &Table{
		name:    name,
		weights: make(map[int]Weights, len(entries)),
		min:     math.MaxInt,
		max:     math.MinInt,
	}
	for nm, w := range entries {
		if nm <= 0 {
			return nil, fmt.Errorf("%w: wavelength %d nm", ErrInvalidTable, nm)
		}
		if !valid(w.X) || !valid(w.Y) || !valid(w.Z) {
			return nil, fmt.Errorf("%w: weights at %d nm: %v", ErrInvalidTable, nm, w)
		}
		t.weights[nm] = w
		t.min = min(t.min, nm)
		t.max = max(t.max, nm)
	}
	return t, nil
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of wavelengths in the table.
func (t *Table) Len() int { return len(t.weights) }

// Range returns the shortest and longest wavelength in the table.
func (t *Table) Range() (lo, hi int) { return t.min, t.max }

// At returns the weights at wavelength nm.
func (t *Table) At(nm int) (Weights, bool) {
	w, ok := t.weights[nm]
	return w, ok
}

// Wavelengths returns the table wavelengths in ascending order.
func (t *Table) Wavelengths() []int {
	out := make([]int, 0, len(t.weights))
	for nm := range t.weights {
		out = append(out, nm)
	}
	slices.Sort(out)
	return out
}

// Covers returns the first wavelength in [lo, hi] (stepping by step) that
// is missing from the table, or ok == true if all are present.
func (t *Table) Covers(lo, hi, step int) (missing int, ok bool) {
	if step <= 0 {
		return lo, false
	}
	for nm := lo; nm <= hi; nm += step {
		if _, found := t.weights[nm]; !found {
			return nm, false
		}
	}
	return 0, true
}

// Sub returns a new table restricted to wavelengths in [lo, hi].
func (t *Table) Sub(lo, hi int) (*Table, error) {
	entries := make(map[int]Weights)
	for nm, w := range t.weights {
		if nm >= lo && nm <= hi {
			entries[nm] = w
		}
	}
	return New(fmt.Sprintf("%s[%d:%d]", t.name, lo, hi), entries)
}

// ParseJSON reads a table from JSON of the form
//
//	{"360": [x, y, z], "361": [x, y, z], ...}
//
// Keys are wavelengths in nm; values are x̄, ȳ, z̄.
func ParseJSON(name string, r io.Reader) (*Table, error) {
	var raw map[string][3]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTable, name, err)
	}

	entries := make(map[int]Weights, len(raw))
	for key, w := range raw {
		nm, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: wavelength key %q", ErrInvalidTable, name, key)
		}
		entries[nm] = Weights{X: w[0], Y: w[1], Z: w[2]}
	}
	return New(name, entries)
}

// Load reads a JSON table from a file.
func Load(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("cmf: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseJSON(filepath.Base(path), f)
}

//go:embed data/cie1931_2deg.json
var cie1931JSON []byte

var (
	cie1931Once  sync.Once
	cie1931Table *Table
	cie1931Err   error
)

// CIE1931 returns the CIE 1931 2° standard observer at 1 nm resolution
// over 360–830 nm. The table is parsed on first use and shared afterwards.
//
// The embedded data is the multi-lobe Gaussian fit of Wyman, Sloan and
// Shirley (JCGT 2013) to the CIE tabulation, negative lobes clipped to 0.
func CIE1931() (*Table, error) {
	cie1931Once.Do(func() {
		cie1931Table, cie1931Err = ParseJSON("CIE 1931 2°", bytes.NewReader(cie1931JSON))
	})
	return cie1931Table, cie1931Err
}

// MustCIE1931 is like CIE1931 but panics if the embedded table is corrupt.
func MustCIE1931() *Table {
	t, err := CIE1931()
	if err != nil {
		panic(err)
	}
	return t
}
