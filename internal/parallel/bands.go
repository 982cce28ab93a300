// Package parallel splits the rows of a grid into bands and evaluates them
// on a bounded number of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Band is the half-open row range [Lo, Hi).
type Band struct {
	Lo, Hi int
}

// Len returns the number of rows in the band.
func (b Band) Len() int { return b.Hi - b.Lo }

// Split divides [0, n) into at most bands contiguous bands whose sizes
// differ by at most one row. It returns nil for n <= 0.
func Split(n, bands int) []Band {
	if n <= 0 {
		return nil
	}
	bands = min(max(bands, 1), n)

	out := make([]Band, bands)
	size, extra := n/bands, n%bands
	lo := 0
	for i := range out {
		hi := lo + size
		if i < extra {
			hi++
		}
		out[i] = Band{Lo: lo, Hi: hi}
		lo = hi
	}
	return out
}

// Scheduler evaluates bands on up to Workers goroutines. Idle goroutines
// claim the next unclaimed band, so a disc's short top and bottom bands
// do not leave workers waiting on its wide middle.
//
// A Scheduler holds no goroutines between calls and is safe for
// concurrent use.
type Scheduler struct {
	workers int
}

// NewScheduler returns a scheduler with the given worker limit.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{workers: workers}
}

// Workers returns the worker limit.
func (s *Scheduler) Workers() int {
	return s.workers
}

// Map calls fn once per band and returns the results in band order.
// Distinct bands may run concurrently; fn must only touch rows inside its
// band. With one worker or one band, fn runs on the calling goroutine.
func Map[R any](s *Scheduler, bands []Band, fn func(Band) R) []R {
	out := make([]R, len(bands))
	workers := min(s.workers, len(bands))
	if workers <= 1 {
		for i, b := range bands {
			out[i] = fn(b)
		}
		return out
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(bands) {
					return
				}
				out[i] = fn(bands[i])
			}
		}()
	}
	wg.Wait()
	return out
}
