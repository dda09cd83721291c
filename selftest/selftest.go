// ════════════════════════════════════════════════════════════════════════════════════════════════
// Atomic Counter Self-Test
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: ioMemory VSL Port Layer
// Component: Contention Self-Test Harness
//
// Description:
//   Replays the counter's behavioural properties against a live backend on pinned, contending
//   workers. Used at bring-up on a new target to confirm the compiled backend before the driver
//   trusts it with reference counts.
//
// Properties:
//   - sequential laws:   round trip, add/sub return, exchange, three increments from ten
//   - contention laws:   no lost updates, monotonic add_return, sub_return balance,
//                        inc/dec cancellation, distinct increment_return, exchange conservation
//
// Concurrency:
//   Uses the process-wide control flags; do not run two self-tests at once.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package selftest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/snuf/iomemory-vsl-freebsd/control"
	"github.com/snuf/iomemory-vsl-freebsd/debug"
	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
)

// ErrPropertyFailed wraps every property violation.
var ErrPropertyFailed = errors.New("selftest: property failed")

// maxExchangeTokens caps per-worker tokens in the exchange property so the
// bookkeeping map stays small.
const maxExchangeTokens = 4096

// PropertyResult is the outcome of one property.
type PropertyResult struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Passed reports whether the property held.
func (p PropertyResult) Passed() bool { return p.Err == nil }

// Result collects every property outcome of one run.
type Result struct {
	Properties []PropertyResult
}

// Failures counts failed properties.
func (r Result) Failures() int {
	n := 0
	for _, p := range r.Properties {
		if !p.Passed() {
			n++
		}
	}
	return n
}

// Err joins every property failure, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, p := range r.Properties {
		if p.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name, p.Err))
		}
	}
	return errors.Join(errs...)
}

type property struct {
	name string
	run  func(cfg Config, c fusionatomic.Counter) error
}

var properties = []property{
	{"set_read_round_trip", checkRoundTrip},
	{"add_return_sub_return", checkAddSubReturn},
	{"exchange_returns_previous", checkExchange},
	{"three_increments_from_ten", checkThreeFromTen},
	{"no_lost_updates", checkNoLostUpdates},
	{"add_return_monotonic", checkAddReturnMonotonic},
	{"sub_return_balance", checkSubReturnBalance},
	{"inc_dec_cancel", checkIncDecCancel},
	{"increment_return_distinct", checkDistinctIncReturn},
	{"exchange_conserves_tokens", checkExchangeConserves},
}

// PropertyNames lists the properties Run checks, in order.
func PropertyNames() []string {
	names := make([]string, len(properties))
	for i, p := range properties {
		names[i] = p.name
	}
	return names
}

// Run checks every property against a fresh counter from newCounter.
// Cancelling ctx stops the workers; Run then returns the properties finished
// so far together with ctx.Err().
func Run(ctx context.Context, cfg Config, newCounter func() fusionatomic.Counter) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	control.Reset()
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		control.Shutdown()
		close(fired)
	})
	defer func() {
		// A shutdown still in flight must not leak into the next run.
		if !stop() {
			<-fired
		}
		control.Reset()
	}()

	var res Result
	for _, p := range properties {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		t0 := time.Now()
		err := p.run(cfg, newCounter())
		if ctxErr := ctx.Err(); ctxErr != nil {
			// A property cut short by cancellation proves nothing either way.
			return res, ctxErr
		}
		res.Properties = append(res.Properties, PropertyResult{Name: p.name, Err: err, Elapsed: time.Since(t0)})
		if err != nil {
			debug.DropError("SELFTEST "+p.name, err)
		}
	}
	return res, nil
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPropertyFailed}, args...)...)
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// SEQUENTIAL LAWS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func checkRoundTrip(_ Config, c fusionatomic.Counter) error {
	for _, v := range []int32{0, 1, -1, 10, 1 << 30, -1 << 31, 1<<31 - 1} {
		c.Set(v)
		if got := c.Read(); got != v {
			return violation("Set(%d) then Read() = %d", v, got)
		}
	}
	return nil
}

func checkAddSubReturn(_ Config, c fusionatomic.Counter) error {
	c.Set(0)
	if got := c.AddReturn(5); got != 5 {
		return violation("AddReturn(5) on 0 = %d", got)
	}
	if got := c.Read(); got != 5 {
		return violation("Read() after AddReturn(5) = %d", got)
	}
	if got := c.SubReturn(5); got != 0 {
		return violation("SubReturn(5) on 5 = %d", got)
	}
	return nil
}

func checkExchange(_ Config, c fusionatomic.Counter) error {
	c.Set(7)
	if got := c.Exchange(42); got != 7 {
		return violation("Exchange(42) on 7 = %d", got)
	}
	if got := c.Read(); got != 42 {
		return violation("Read() after Exchange(42) = %d", got)
	}
	return nil
}

func checkThreeFromTen(cfg Config, c fusionatomic.Counter) error {
	c.Set(10)
	var got [3]int32
	three := cfg
	three.Workers = 3
	runPinned(three, func(w int) { got[w] = c.IncReturn() })

	s := got[:]
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	if got != [3]int32{11, 12, 13} {
		return violation("IncReturn results %v, want [11 12 13]", got)
	}
	if v := c.Read(); v != 13 {
		return violation("Read() = %d, want 13", v)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════════════════════════
// CONTENTION LAWS
// ═══════════════════════════════════════════════════════════════════════════════════════════════

func checkNoLostUpdates(cfg Config, c fusionatomic.Counter) error {
	const v0 = 10
	c.Set(v0)
	runPinned(cfg, func(int) {
		for i := 0; i < cfg.OpsPerWorker; i++ {
			if stopped(i) {
				return
			}
			c.Inc()
		}
	})
	want := int32(v0 + cfg.Workers*cfg.OpsPerWorker)
	if got := c.Read(); got != want {
		return violation("Read() = %d after %d increments from %d, want %d", got, cfg.Workers*cfg.OpsPerWorker, v0, want)
	}
	return nil
}

func streams(cfg Config) ([][]int32, int64) {
	s := make([][]int32, cfg.Workers)
	var total int64
	for w := range s {
		s[w] = Deltas(cfg.Seed, w, cfg.OpsPerWorker)
		total += sum(s[w])
	}
	return s, total
}

// checkAddReturnMonotonic: with only positive deltas in flight, each worker
// must see its results grow by at least its own delta every call.
func checkAddReturnMonotonic(cfg Config, c fusionatomic.Counter) error {
	ds, total := streams(cfg)
	errs := make([]error, cfg.Workers)
	c.Set(0)
	runPinned(cfg, func(w int) {
		prev := int32(0)
		for i, d := range ds[w] {
			if stopped(i) {
				return
			}
			r := c.AddReturn(d)
			if r-prev < d {
				errs[w] = violation("worker %d: AddReturn(%d) = %d after %d", w, d, r, prev)
				return
			}
			prev = r
		}
	})
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if got := c.Read(); int64(got) != total {
		return violation("Read() = %d, want %d", got, total)
	}
	return nil
}

func checkSubReturnBalance(cfg Config, c fusionatomic.Counter) error {
	ds, total := streams(cfg)
	errs := make([]error, cfg.Workers)
	c.Set(int32(total))
	runPinned(cfg, func(w int) {
		prev := int32(total)
		for i, d := range ds[w] {
			if stopped(i) {
				return
			}
			r := c.SubReturn(d)
			if prev-r < d {
				errs[w] = violation("worker %d: SubReturn(%d) = %d after %d", w, d, r, prev)
				return
			}
			prev = r
		}
	})
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if got := c.Read(); got != 0 {
		return violation("Read() = %d after subtracting every delta, want 0", got)
	}
	return nil
}

func checkIncDecCancel(cfg Config, c fusionatomic.Counter) error {
	const v0 = -5
	c.Set(v0)
	runPinned(cfg, func(w int) {
		for i := 0; i < cfg.OpsPerWorker/2; i++ {
			if stopped(i) {
				return
			}
			if (w+i)%2 == 0 {
				c.IncReturn()
				c.DecReturn()
			} else {
				c.Inc()
				c.Dec()
			}
		}
	})
	if got := c.Read(); got != v0 {
		return violation("Read() = %d after balanced inc/dec, want %d", got, v0)
	}
	return nil
}

func checkDistinctIncReturn(cfg Config, c fusionatomic.Counter) error {
	c.Set(0)
	results := make([][]int32, cfg.Workers)
	runPinned(cfg, func(w int) {
		out := make([]int32, 0, cfg.OpsPerWorker)
		for i := 0; i < cfg.OpsPerWorker; i++ {
			if stopped(i) {
				break
			}
			out = append(out, c.IncReturn())
		}
		results[w] = out
	})
	all := make([]int32, 0, cfg.Workers*cfg.OpsPerWorker)
	for _, r := range results {
		all = append(all, r...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	for i, v := range all {
		if v != int32(i+1) {
			return violation("sorted results[%d] = %d, want %d (duplicate or gap)", i, v, i+1)
		}
	}
	return nil
}

func checkExchangeConserves(cfg Config, c fusionatomic.Counter) error {
	n := min(cfg.OpsPerWorker, maxExchangeTokens)
	c.Set(-1)
	seen := make([][]int32, cfg.Workers)
	runPinned(cfg, func(w int) {
		out := make([]int32, 0, n)
		for i := 0; i < n; i++ {
			if stopped(i) {
				break
			}
			out = append(out, c.Exchange(int32(w*n+i)))
		}
		seen[w] = out
	})
	count := make(map[int32]int, cfg.Workers*n+1)
	for _, s := range seen {
		for _, v := range s {
			count[v]++
		}
	}
	count[c.Read()]++
	if count[-1] != 1 {
		return violation("initial token seen %d times", count[-1])
	}
	for tok := int32(0); tok < int32(cfg.Workers*n); tok++ {
		if count[tok] != 1 {
			return violation("token %d seen %d times", tok, count[tok])
		}
	}
	return nil
}
