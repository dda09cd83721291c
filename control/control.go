// control.go — Global stop/activity flags for pinned self-test workers
// ============================================================================
// SYSTEM CONTROL ORCHESTRATION
// ============================================================================
//
// Control package provides the shared signalling between the self-test
// driver and its pinned worker goroutines. Every flag is a fusionatomic
// counter, so the package itself exercises the primitive it helps test.
//
// Threading model:
//   • The driver raises activity via SignalActivity() while work is queued
//   • Workers poll Stopped() and PollCooldown() inside their loops
//   • Shutdown() is idempotent; exactly one caller observes the transition
//
// Cooldown is counted in polls rather than wall time so tests stay
// deterministic and the hot loop never reads the clock.

package control

import (
	"github.com/snuf/iomemory-vsl-freebsd/constants"
	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
)

// ============================================================================
// GLOBAL STATE MANAGEMENT
// ============================================================================

var (
	shutdownFlag fusionatomic.Atomic // 1 = workers must exit
	activityFlag fusionatomic.Atomic // 1 = work recently signalled

	pollCounter       fusionatomic.Atomic // monotonically increasing poll clock
	lastActivityCount fusionatomic.Atomic // pollCounter value at last signal
)

// ============================================================================
// ACTIVITY SIGNALING
// ============================================================================

// SignalActivity marks the system hot and restarts the cooldown window.
//
//go:nosplit
func SignalActivity() {
	lastActivityCount.Set(pollCounter.Read())
	activityFlag.Set(1)
}

// PollCooldown advances the poll clock and clears the hot flag once more
// than ControlCooldownPolls polls have passed since the last signal.
// Differences are taken modulo 2^32 so clock wraparound is harmless.
//
//go:nosplit
func PollCooldown() {
	now := pollCounter.IncReturn()
	if activityFlag.Read() == 1 && uint32(now-lastActivityCount.Read()) > constants.ControlCooldownPolls {
		activityFlag.Set(0)
	}
}

// Active reports whether the hot flag is set.
func Active() bool { return activityFlag.Read() == 1 }

// ============================================================================
// SYSTEM SHUTDOWN
// ============================================================================

// Shutdown raises the stop flag. It returns true only for the call that
// actually moved the flag from running to stopped.
func Shutdown() bool {
	return shutdownFlag.Exchange(1) == 0
}

// Stopped reports whether Shutdown has been called since the last Reset.
//
//go:nosplit
func Stopped() bool { return shutdownFlag.Read() != 0 }

// Reset returns every flag to its initial state. Only call it while no
// worker is running.
func Reset() {
	shutdownFlag.Set(0)
	activityFlag.Set(0)
	pollCounter.Set(0)
	lastActivityCount.Set(0)
}

// ============================================================================
// FLAG ACCESS
// ============================================================================

// Flags returns the stop and hot flags for callers that poll them directly.
func Flags() (stop, hot *fusionatomic.Atomic) {
	return &shutdownFlag, &activityFlag
}
