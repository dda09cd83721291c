//go:build cgo

package capability

const cgoEnabled = true
