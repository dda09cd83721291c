//go:build cgo && fusion_sync_builtins

package fusionatomic

func init() {
	backends = append(backends, backend{"syncbuiltin", func() Counter { return new(SyncBuiltin) }})
}
