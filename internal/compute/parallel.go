package compute

import (
	"runtime"
	"sync"
)

// Below this many units the goroutine fan-out costs more than it buys.
const minParallelUnits = 256

// ParallelBackend splits the unit range into one contiguous chunk per
// worker and joins them with a WaitGroup. The join is the only
// synchronization: units touch disjoint output slots by contract.
type ParallelBackend struct {
	workers int
}

// NewParallelBackend uses runtime.NumCPU() workers when workers <= 0.
func NewParallelBackend(workers int) *ParallelBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &ParallelBackend{workers: workers}
}

func (p *ParallelBackend) Name() string { return "parallel" }
func (p *ParallelBackend) Workers() int { return p.workers }

func (p *ParallelBackend) Dispatch(units int, fn func(lo, hi int)) {
	if units <= 0 {
		return
	}
	if units < minParallelUnits || p.workers <= 1 {
		fn(0, units)
		return
	}

	chunkSize := (units + p.workers - 1) / p.workers

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		start := w * chunkSize
		if start >= units {
			break
		}
		end := start + chunkSize
		if end > units {
			end = units
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(start, end)
	}
	wg.Wait()
}
