//go:build !cgo

package capability

const cgoEnabled = false
