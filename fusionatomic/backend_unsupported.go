//go:build fusion_sync_builtins && (!cgo || fusion_casloop)

// backend_unsupported.go — UnsupportedToolchain
//
// fusion_sync_builtins needs cgo and cannot be combined with fusion_casloop.
// The reference below is undefined on purpose so the build stops here and
// names the problem instead of compiling a counter with no backend.

package fusionatomic

var _ = UnsupportedToolchain_fusion_sync_builtins_requires_cgo_and_excludes_fusion_casloop
