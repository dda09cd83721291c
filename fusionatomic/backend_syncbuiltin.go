//go:build fusion_sync_builtins && cgo && !fusion_casloop

package fusionatomic

// Atomic is the counter type the driver embeds. This build binds it to the
// GCC __sync builtins.
type Atomic = SyncBuiltin

// Backend names the realization bound to Atomic.
const Backend = "syncbuiltin"
