//go:build (!amd64 && !arm64) || !cgo || noasm

// relax_stub.go — No-op spin hint where no cgo PAUSE/YIELD stub applies

package fusionatomic

//go:nosplit
func cpuRelax() {}
