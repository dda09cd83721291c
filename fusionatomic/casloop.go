// ════════════════════════════════════════════════════════════════════════════════════════════════
// Compare-And-Swap Backend
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: ioMemory VSL Port Layer
// Component: Native Instruction Realization
//
// Description:
//   Realizes add/sub and their _return variants as a load followed by a conditional swap,
//   retried until no other context changed the value in between. Increment and decrement use
//   a single fetch-add, exchange a single swap, matching the native instruction mix of targets
//   whose fetch-add only accepts small immediates.
//
// Contention:
//   The first casSpinsBeforeRelax failed swaps retry immediately. Past that, each retry is
//   preceded by cpuRelax(), which on amd64/arm64 with cgo is a full cgo call around a single
//   PAUSE/YIELD, so it is only paid once a loop is known to be contended. There is no retry
//   bound; under realistic contention the loop exits within a handful of iterations.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package fusionatomic

// CASLoop is the retry-loop realization of Counter.
type CASLoop struct {
	_     noCopy
	value int32
}

// casSpinsBeforeRelax is the number of failed swaps retried without a hint.
const casSpinsBeforeRelax = 4

// update applies delta through the retry loop and returns the new value.
// The seeding load may be stale; the swap rejects it if so.
func (c *CASLoop) update(delta int32, order Ordering) int32 {
	for spins := 0; ; spins++ {
		old := load(&c.value, Relaxed)
		next := old + delta
		if cas(&c.value, old, next, order) {
			return next
		}
		if spins >= casSpinsBeforeRelax {
			cpuRelax()
		}
	}
}

//go:nosplit
func (c *CASLoop) Set(v int32) { store(&c.value, v, Guarantee(OpSet)) }

//go:nosplit
func (c *CASLoop) Read() int32 { return load(&c.value, Guarantee(OpRead)) }

//go:nosplit
func (c *CASLoop) Add(delta int32) { c.update(delta, Guarantee(OpAdd)) }

//go:nosplit
func (c *CASLoop) AddReturn(delta int32) int32 { return c.update(delta, Guarantee(OpAddReturn)) }

// Sub goes through the same loop with the negated delta; modular arithmetic
// makes old-delta and old+(-delta) identical, MinInt32 included.
//
//go:nosplit
func (c *CASLoop) Sub(delta int32) { c.update(-delta, Guarantee(OpSub)) }

//go:nosplit
func (c *CASLoop) SubReturn(delta int32) int32 { return c.update(-delta, Guarantee(OpSubReturn)) }

//go:nosplit
func (c *CASLoop) Inc() { addFetch(&c.value, 1, Guarantee(OpInc)) }

//go:nosplit
func (c *CASLoop) IncReturn() int32 { return addFetch(&c.value, 1, Guarantee(OpIncReturn)) }

//go:nosplit
func (c *CASLoop) Dec() { addFetch(&c.value, -1, Guarantee(OpDec)) }

//go:nosplit
func (c *CASLoop) DecReturn() int32 { return addFetch(&c.value, -1, Guarantee(OpDecReturn)) }

// Exchange is a plain swap with acquire ordering. Whether a release fence
// should precede it on this backend is unresolved; SyncBuiltin issues one,
// this backend does not promise one.
//
//go:nosplit
func (c *CASLoop) Exchange(v int32) int32 { return swap(&c.value, v, Guarantee(OpExchange)) }
