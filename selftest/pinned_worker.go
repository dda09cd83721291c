// -----------------------------------------------------------------------------
// pinned_worker.go — Contending goroutines pinned to one CPU core each
// -----------------------------------------------------------------------------
//
//  Every worker locks its goroutine to an OS thread and, when pinning is on,
//  binds that thread to CPU (worker mod NumCPU) so contention really crosses
//  cores. Workers are released together from a start barrier to maximise
//  overlap on the counter under test.
// -----------------------------------------------------------------------------

package selftest

import (
	"runtime"
	"sync"

	"github.com/snuf/iomemory-vsl-freebsd/control"
)

// checkEvery is how many operations a worker issues between stop-flag polls.
const checkEvery = 1024

// runPinned runs body(w) on cfg.Workers goroutines and waits for all of them.
// body must poll stopped() at least every checkEvery operations.
func runPinned(cfg Config, body func(w int)) {
	var ready, done sync.WaitGroup
	start := make(chan struct{})
	ncpu := runtime.NumCPU()

	ready.Add(cfg.Workers)
	done.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func(w int) {
			// 1) Make the goroutine non-migratable.
			runtime.LockOSThread()
			defer func() {
				runtime.UnlockOSThread()
				done.Done()
			}()
			if cfg.Pin {
				setAffinity(w % ncpu)
			}
			ready.Done()
			<-start
			body(w)
		}(w)
	}
	ready.Wait()
	control.SignalActivity()
	close(start)
	done.Wait()
}

// stopped is the per-chunk poll used inside worker loops.
func stopped(i int) bool {
	if i%checkEvery != 0 {
		return false
	}
	control.PollCooldown()
	return control.Stopped()
}
