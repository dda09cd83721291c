//go:build arm64 && cgo && !noasm

// relax_arm64.go — YIELD hint between failed compare-and-swap attempts

package fusionatomic

/*
#ifdef __aarch64__
static inline void fio_cpu_yield() {
    __asm__ __volatile__("yield" ::: "memory");
}
#else
#error "This file requires ARM64 architecture"
#endif
*/
import "C"

func cpuRelax() {
	C.fio_cpu_yield()
}
