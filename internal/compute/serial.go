package compute

// SerialBackend runs every unit on the calling goroutine, in index
// order. It is the reference for order-independence checks: parallel
// backends must produce bit-identical results.
type SerialBackend struct{}

func NewSerialBackend() *SerialBackend {
	return &SerialBackend{}
}

func (s *SerialBackend) Name() string { return "serial" }
func (s *SerialBackend) Workers() int { return 1 }

func (s *SerialBackend) Dispatch(units int, fn func(lo, hi int)) {
	if units <= 0 {
		return
	}
	fn(0, units)
}
