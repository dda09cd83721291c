// atomic_test.go — Property suite run against every compiled backend
package fusionatomic

import (
	"math"
	"testing"
)

// backend is one realization under test.
type backend struct {
	name string
	new  func() Counter
}

// backends lists every realization compiled into this test binary.
// syncbuiltin_test.go appends the cgo backend when it is built.
var backends = []backend{
	{"fetchadd", func() Counter { return new(FetchAdd) }},
	{"casloop", func() Counter { return new(CASLoop) }},
	{"atomic", func() Counter { return new(Atomic) }},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, c Counter)) {
	t.Helper()
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) { fn(t, b.new()) })
	}
}

func TestZeroValueReadsZero(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		if got := c.Read(); got != 0 {
			t.Fatalf("zero value Read() = %d, want 0", got)
		}
	})
}

func TestSetReadRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		for _, v := range []int32{0, 1, -1, 10, 42, math.MaxInt32, math.MinInt32} {
			c.Set(v)
			if got := c.Read(); got != v {
				t.Fatalf("Set(%d) then Read() = %d", v, got)
			}
		}
	})
}

func TestAddReturnReportsNewValue(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		c.Set(100)
		for _, d := range []int32{1, 7, -3, 0, -200, 1000} {
			before := c.Read()
			got := c.AddReturn(d)
			if got != before+d {
				t.Fatalf("AddReturn(%d) from %d = %d, want %d", d, before, got, before+d)
			}
			if after := c.Read(); after != got {
				t.Fatalf("Read() after AddReturn = %d, want %d", after, got)
			}
		}
	})
}

func TestAddReturnThenSubReturn(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		if got := c.AddReturn(5); got != 5 {
			t.Fatalf("AddReturn(5) on 0 = %d, want 5", got)
		}
		if got := c.SubReturn(5); got != 0 {
			t.Fatalf("SubReturn(5) on 5 = %d, want 0", got)
		}
	})
}

func TestExchangeReturnsPrevious(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		c.Set(7)
		if got := c.Exchange(42); got != 7 {
			t.Fatalf("Exchange(42) on 7 = %d, want 7", got)
		}
		if got := c.Read(); got != 42 {
			t.Fatalf("Read() after Exchange(42) = %d, want 42", got)
		}
		if got := c.Exchange(-1); got != 42 {
			t.Fatalf("second Exchange = %d, want 42", got)
		}
	})
}

func TestVoidVariantsMatchReturnVariants(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		c.Set(0)
		c.Add(9)
		c.Inc()
		c.Sub(4)
		c.Dec()
		if got := c.Read(); got != 5 {
			t.Fatalf("Add(9) Inc() Sub(4) Dec() = %d, want 5", got)
		}
		if got := c.IncReturn(); got != 6 {
			t.Fatalf("IncReturn() = %d, want 6", got)
		}
		if got := c.DecReturn(); got != 5 {
			t.Fatalf("DecReturn() = %d, want 5", got)
		}
	})
}

func TestIncDecCancel(t *testing.T) {
	const n = 1000
	forEachBackend(t, func(t *testing.T, c Counter) {
		c.Set(-17)
		for i := 0; i < n; i++ {
			up := c.IncReturn()
			down := c.DecReturn()
			if up-down != 1 {
				t.Fatalf("iteration %d: IncReturn()=%d DecReturn()=%d", i, up, down)
			}
		}
		if got := c.Read(); got != -17 {
			t.Fatalf("after %d inc/dec pairs Read() = %d, want -17", n, got)
		}
	})
}

func TestWrapAround(t *testing.T) {
	forEachBackend(t, func(t *testing.T, c Counter) {
		c.Set(math.MaxInt32)
		if got := c.IncReturn(); got != math.MinInt32 {
			t.Fatalf("IncReturn() at MaxInt32 = %d, want MinInt32", got)
		}
		if got := c.DecReturn(); got != math.MaxInt32 {
			t.Fatalf("DecReturn() at MinInt32 = %d, want MaxInt32", got)
		}
		c.Set(0)
		if got := c.SubReturn(math.MinInt32); got != math.MinInt32 {
			t.Fatalf("SubReturn(MinInt32) on 0 = %d, want MinInt32", got)
		}
		if got := c.AddReturn(math.MinInt32); got != 0 {
			t.Fatalf("AddReturn(MinInt32) on MinInt32 = %d, want 0", got)
		}
	})
}

func TestBackendNamesCompiledAtomic(t *testing.T) {
	known := map[string]bool{"fetchadd": true, "casloop": true, "syncbuiltin": true}
	if !known[Backend] {
		t.Fatalf("Backend = %q, not a known realization", Backend)
	}
}
