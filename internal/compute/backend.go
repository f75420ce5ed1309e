package compute

import "runtime"

// Backend executes [0, units) of independent work, chunked. Dispatch
// must not return until every chunk has completed.
type Backend interface {
	Name() string
	Workers() int
	Dispatch(units int, fn func(lo, hi int))
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend picks the parallel backend when more than one CPU
// is available, the serial one otherwise.
func AutoSelectBackend() Backend {
	if runtime.NumCPU() > 1 {
		return NewParallelBackend(0)
	}
	return NewSerialBackend()
}

// ByName resolves a backend from its configured name; unknown names
// fall back to auto-selection.
func ByName(name string) Backend {
	switch name {
	case "serial":
		return NewSerialBackend()
	case "parallel":
		return NewParallelBackend(0)
	default:
		return AutoSelectBackend()
	}
}
