// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Global tunables for the port-layer self-test
//
// Purpose:
//   - Defaults for the contention self-test and its persistence.
//   - Poll-count cooldown for worker coordination.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Self-Test Workload ──────────────────────────

const (
	// DefaultWorkers is the number of contending goroutines.
	// 8 keeps every core of a typical 4C/8T host busy without oversubscribing.
	DefaultWorkers = 8

	// DefaultOpsPerWorker is the operation count each worker issues per property.
	// 1<<16 ops × 8 workers stays far from int32 wraparound even with deltas ≤ 255.
	DefaultOpsPerWorker = 1 << 16

	// MaxWorkers bounds the worker count; affinity masks cover 64 CPUs.
	MaxWorkers = 64

	// MaxOpsPerWorker bounds per-worker ops so MaxWorkers × MaxOpsPerWorker × 255
	// fits in int32 and expected sums stay exact.
	MaxOpsPerWorker = 1 << 17

	// DefaultSeed keys the deterministic delta streams.
	DefaultSeed = "fusion-atomic"
)

// ───────────────────────────── Coordination ────────────────────────────────

const (
	// ControlCooldownPolls is how many PollCooldown calls the hot flag survives
	// without fresh activity.
	ControlCooldownPolls = 1 << 20
)

// ───────────────────────────── Statistics ──────────────────────────────────

const (
	// StatsNamespace prefixes every exported metric.
	StatsNamespace = "fio"

	// DefaultSnapshotLabel tags self-test snapshots in the stats database.
	DefaultSnapshotLabel = "selftest"
)
