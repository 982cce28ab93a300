package blackbody

import (
	"fmt"
	"image"
	"iter"

	"github.com/gogpu/blackbody/internal/parallel"
)

// BoundaryPolicy selects how a disc is inscribed in a square grid.
type BoundaryPolicy uint8

const (
	// InclusiveDiameter uses coordinates 0..size inclusive (side size+1)
	// with center and radius size/2.
	InclusiveDiameter BoundaryPolicy = iota

	// CenteredGrid uses coordinates 0..size-1 (side size) with center and
	// radius (size-1)/2.
	CenteredGrid
)

// String implements fmt.Stringer.
func (p BoundaryPolicy) String() string {
	switch p {
	case InclusiveDiameter:
		return "inclusive-diameter"
	case CenteredGrid:
		return "centered-grid"
	default:
		return fmt.Sprintf("BoundaryPolicy(%d)", uint8(p))
	}
}

// ParseBoundaryPolicy parses the names returned by BoundaryPolicy.String.
func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch s {
	case "inclusive-diameter", "inclusive":
		return InclusiveDiameter, nil
	case "centered-grid", "centered":
		return CenteredGrid, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// side returns the grid side and the doubled diameter d = 2·radius.
// Working with doubled coordinates keeps the inclusion test in integers:
// (x−c)² + (y−c)² ≤ r²  ⇔  (2x−d)² + (2y−d)² ≤ d².
func (p BoundaryPolicy) side(size int) (side, d int) {
	if p == CenteredGrid {
		return size, size - 1
	}
	return size + 1, size
}

// Field is a square grid whose cells inside an inscribed disc hold a
// shared payload. Cells outside the disc are empty.
//
// The payload is held by pointer: every inside cell refers to the same
// value, so painting a large payload costs one bit per cell.
type Field[T any] struct {
	size    int
	policy  BoundaryPolicy
	side    int
	inside  []bool // index x*side + y
	count   int
	payload *T
}

// Mask paints payload into the disc inscribed in a grid of the given size.
// A nil payload is allowed; cells inside the disc are still marked.
func Mask[T any](size int, policy BoundaryPolicy, payload *T) (*Field[T], error) {
	f, err := newField(size, policy, payload)
	if err != nil {
		return nil, err
	}
	f.count = f.fill(0, f.side)
	Logger().Debug("blackbody: mask", "size", size, "policy", policy, "side", f.side, "cells", f.count)
	return f, nil
}

// MaskParallel is Mask with the rows split across workers goroutines
// (GOMAXPROCS if workers <= 0). The resulting field is identical.
func MaskParallel[T any](size int, policy BoundaryPolicy, payload *T, workers int) (*Field[T], error) {
	f, err := newField(size, policy, payload)
	if err != nil {
		return nil, err
	}

	sched := parallel.NewScheduler(workers)
	counts := parallel.Map(sched, parallel.Split(f.side, sched.Workers()*4), func(b parallel.Band) int {
		return f.fill(b.Lo, b.Hi)
	})
	for _, c := range counts {
		f.count += c
	}

	Logger().Debug("blackbody: mask", "size", size, "policy", policy, "side", f.side,
		"cells", f.count, "workers", sched.Workers())
	return f, nil
}

func newField[T any](size int, policy BoundaryPolicy, payload *T) (*Field[T], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGridSize, size)
	}
	if policy != InclusiveDiameter && policy != CenteredGrid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, policy)
	}
	side, _ := policy.side(size)
	return &Field[T]{
		size:    size,
		policy:  policy,
		side:    side,
		inside:  make([]bool, side*side),
		payload: payload,
	}, nil
}

// fill marks the inside cells of rows x in [lo, hi) and returns how many
// it marked. Distinct row ranges touch disjoint cells.
func (f *Field[T]) fill(lo, hi int) int {
	_, d := f.policy.side(f.size)
	n := 0
	for x := lo; x < hi; x++ {
		dx := 2*x - d
		for y := 0; y < f.side; y++ {
			dy := 2*y - d
			if dx*dx+dy*dy <= d*d {
				f.inside[x*f.side+y] = true
				n++
			}
		}
	}
	return n
}

// Size returns the size the field was masked with.
func (f *Field[T]) Size() int { return f.size }

// Side returns the number of cells along each edge of the grid.
func (f *Field[T]) Side() int { return f.side }

// Policy returns the boundary policy of the field.
func (f *Field[T]) Policy() BoundaryPolicy { return f.policy }

// Count returns the number of cells inside the disc.
func (f *Field[T]) Count() int { return f.count }

// Payload returns the shared payload.
func (f *Field[T]) Payload() *T { return f.payload }

// Center returns the disc center and radius in cell coordinates.
func (f *Field[T]) Center() (center, radius float64) {
	_, d := f.policy.side(f.size)
	return float64(d) / 2, float64(d) / 2
}

// Inside reports whether cell (x, y) lies in the disc.
// Coordinates outside the grid are never inside.
func (f *Field[T]) Inside(x, y int) bool {
	if x < 0 || x >= f.side || y < 0 || y >= f.side {
		return false
	}
	return f.inside[x*f.side+y]
}

// At returns the payload of cell (x, y) and whether the cell is inside
// the disc. Empty cells return nil, false.
func (f *Field[T]) At(x, y int) (*T, bool) {
	if !f.Inside(x, y) {
		return nil, false
	}
	return f.payload, true
}

// All iterates over the inside cells in x-major order.
func (f *Field[T]) All() iter.Seq2[image.Point, *T] {
	return func(yield func(image.Point, *T) bool) {
		for i, in := range f.inside {
			if in && !yield(image.Pt(i/f.side, i%f.side), f.payload) {
				return
			}
		}
	}
}
