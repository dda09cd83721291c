// ════════════════════════════════════════════════════════════════════════════════════════════════
// 🧪 TEST SUITE: WORKER COORDINATION FLAGS
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: ioMemory VSL Port Layer
// Component: Control System Test Suite
//
// Description:
//   Validates flag transitions, poll-count cooldown and concurrent shutdown built on the
//   fusionatomic counter.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package control

import (
	"sync"
	"testing"

	"github.com/snuf/iomemory-vsl-freebsd/constants"
)

// ============================================================================
// TEST CONFIGURATION
// ============================================================================

const testGoroutines = 16

// advanceVirtualTime simulates time passage via poll increments.
func advanceVirtualTime(polls int32) {
	pollCounter.Add(polls)
}

// ============================================================================
// UNIT TESTS - INITIALIZATION
// ============================================================================

func TestControl_InitialState(t *testing.T) {
	Reset()
	if Stopped() || Active() {
		t.Fatal("flags should start cleared")
	}
	stop, hot := Flags()
	if stop.Read() != 0 || hot.Read() != 0 {
		t.Fatal("flag pointers should reference zero values")
	}
	if stop != &shutdownFlag || hot != &activityFlag {
		t.Fatal("Flags should expose the package globals")
	}
}

// ============================================================================
// UNIT TESTS - ACTIVITY & COOLDOWN
// ============================================================================

func TestControl_SignalActivity(t *testing.T) {
	Reset()
	advanceVirtualTime(100)
	SignalActivity()
	if !Active() {
		t.Fatal("SignalActivity should set the hot flag")
	}
	if lastActivityCount.Read() != 100 {
		t.Fatalf("lastActivityCount = %d, want 100", lastActivityCount.Read())
	}
	if pollCounter.Read() != 100 {
		t.Fatal("SignalActivity should not advance the poll clock")
	}
}

func TestControl_PollCooldown(t *testing.T) {
	t.Run("InactiveSystem", func(t *testing.T) {
		Reset()
		PollCooldown()
		if Active() {
			t.Error("PollCooldown should not activate a cold system")
		}
		if pollCounter.Read() != 1 {
			t.Error("PollCooldown should advance the poll clock")
		}
	})

	t.Run("BoundaryConditions", func(t *testing.T) {
		Reset()
		SignalActivity()
		advanceVirtualTime(constants.ControlCooldownPolls - 1)
		PollCooldown() // now == cooldown exactly
		if !Active() {
			t.Fatal("hot flag should survive up to the cooldown boundary")
		}
		PollCooldown()
		if Active() {
			t.Fatal("hot flag should clear one poll past the boundary")
		}
	})

	t.Run("WrapAround", func(t *testing.T) {
		Reset()
		pollCounter.Set(2147483647 - 10)
		SignalActivity()
		for i := 0; i < 20; i++ {
			PollCooldown()
		}
		if !Active() {
			t.Fatal("clock wraparound must not expire the hot flag early")
		}
	})
}

// ============================================================================
// UNIT TESTS - SHUTDOWN
// ============================================================================

func TestControl_ShutdownOnce(t *testing.T) {
	Reset()
	var wg sync.WaitGroup
	var winners sync.Map
	for i := 0; i < testGoroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if Shutdown() {
				winners.Store(i, true)
			}
		}(i)
	}
	wg.Wait()

	n := 0
	winners.Range(func(_, _ any) bool { n++; return true })
	if n != 1 {
		t.Fatalf("%d callers observed the shutdown transition, want 1", n)
	}
	if !Stopped() {
		t.Fatal("Stopped() should report true after Shutdown")
	}
	Reset()
	if Stopped() {
		t.Fatal("Reset should clear the stop flag")
	}
}

// ============================================================================
// BENCHMARKS
// ============================================================================

func BenchmarkPollCooldown(b *testing.B) {
	Reset()
	SignalActivity()
	for i := 0; i < b.N; i++ {
		PollCooldown()
	}
}
