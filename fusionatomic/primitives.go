// primitives.go — The only code that touches counter memory
//
// Every backend funnels its accesses through these five calls. The ordering
// argument records the contract of the call site. sync/atomic implements each
// of them sequentially consistent on every Go target, which satisfies any
// requested ordering; nothing here may be rewritten to something weaker than
// the argument states.

package fusionatomic

import "sync/atomic"

//go:nosplit
func load(p *int32, _ Ordering) int32 {
	return atomic.LoadInt32(p)
}

//go:nosplit
func store(p *int32, v int32, _ Ordering) {
	atomic.StoreInt32(p, v)
}

// cas replaces *p with new only if it still holds old.
//
//go:nosplit
func cas(p *int32, old, new int32, _ Ordering) bool {
	return atomic.CompareAndSwapInt32(p, old, new)
}

// addFetch adds delta and returns the resulting value.
//
//go:nosplit
func addFetch(p *int32, delta int32, _ Ordering) int32 {
	return atomic.AddInt32(p, delta)
}

// swap stores v and returns the value it replaced.
//
//go:nosplit
func swap(p *int32, v int32, _ Ordering) int32 {
	return atomic.SwapInt32(p, v)
}
