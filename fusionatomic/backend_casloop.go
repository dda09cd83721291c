//go:build fusion_casloop && !fusion_sync_builtins

package fusionatomic

// Atomic is the counter type the driver embeds. This build binds it to the
// compare-and-swap retry loop.
type Atomic = CASLoop

// Backend names the realization bound to Atomic.
const Backend = "casloop"
