// fetchadd.go — Intrinsic backend: one atomic instruction per read-modify-write
package fusionatomic

// FetchAdd realizes every read-modify-write as a single fetch-and-add or
// swap. Contention never causes a local retry.
type FetchAdd struct {
	_     noCopy
	value int32
}

//go:nosplit
func (c *FetchAdd) Set(v int32) { store(&c.value, v, Guarantee(OpSet)) }

//go:nosplit
func (c *FetchAdd) Read() int32 { return load(&c.value, Guarantee(OpRead)) }

//go:nosplit
func (c *FetchAdd) Add(delta int32) { addFetch(&c.value, delta, Guarantee(OpAdd)) }

//go:nosplit
func (c *FetchAdd) AddReturn(delta int32) int32 {
	return addFetch(&c.value, delta, Guarantee(OpAddReturn))
}

//go:nosplit
func (c *FetchAdd) Inc() { addFetch(&c.value, 1, Guarantee(OpInc)) }

//go:nosplit
func (c *FetchAdd) IncReturn() int32 { return addFetch(&c.value, 1, Guarantee(OpIncReturn)) }

//go:nosplit
func (c *FetchAdd) Dec() { addFetch(&c.value, -1, Guarantee(OpDec)) }

//go:nosplit
func (c *FetchAdd) DecReturn() int32 { return addFetch(&c.value, -1, Guarantee(OpDecReturn)) }

// Sub negates delta; -MinInt32 wraps to itself, which is still the correct
// modular subtraction.
//
//go:nosplit
func (c *FetchAdd) Sub(delta int32) { addFetch(&c.value, -delta, Guarantee(OpSub)) }

//go:nosplit
func (c *FetchAdd) SubReturn(delta int32) int32 {
	return addFetch(&c.value, -delta, Guarantee(OpSubReturn))
}

// Exchange carries acquire ordering only. See Counter.
//
//go:nosplit
func (c *FetchAdd) Exchange(v int32) int32 { return swap(&c.value, v, Guarantee(OpExchange)) }
