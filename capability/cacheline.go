package capability

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

func cacheLine() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}
