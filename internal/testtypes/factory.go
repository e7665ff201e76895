package testtypes

import "sync/atomic"

// Factory creates StructA values and counts constructor invocations.
// The count is atomic so tests can assert the single-construction invariant
// under concurrent resolution.
type Factory struct {
	count atomic.Int32
}

func (f *Factory) NewStructA() *StructA {
	return &StructA{
		Tag: int(f.count.Add(1) - 1),
	}
}

func (f *Factory) NewInterfaceA() InterfaceA {
	return f.NewStructA()
}

// Count returns the number of constructor invocations so far.
func (f *Factory) Count() int {
	return int(f.count.Load())
}
