// ════════════════════════════════════════════════════════════════════════════════════════════════
// Fusion Atomic - Portable 32-bit Atomic Counter
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: ioMemory VSL Port Layer
// Component: Atomic Integer Primitive
//
// Description:
//   Signed 32-bit counter used throughout the driver for reference counts, statistics and
//   lock-free hand-off between request-processing contexts. One operation set, several
//   realizations, exactly one of which is bound to Atomic at build time.
//
// Backends:
//   - FetchAdd:    single fetch-and-add / swap per read-modify-write (default build)
//   - CASLoop:     load + compare-and-swap retry loop (-tags fusion_casloop)
//   - SyncBuiltin: GCC __sync builtins through cgo (-tags fusion_sync_builtins, cgo only)
//
// Ordering contract:
//   - Set / Read:        atomic visibility of the single access, nothing more
//   - add/sub/inc/dec:   serializable, no lost updates
//   - Exchange:          ACQUIRE ONLY; prior stores are not promised visible first
//
// Build failures:
//   Unsupported tag or compiler combinations stop the build. There is no runtime fallback.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

// Package fusionatomic implements the driver's atomic 32-bit counter.
//
// The zero value of every counter type is ready to use and holds 0. A counter
// must not be copied after first use, and its value must only be touched
// through its methods.
package fusionatomic
