//go:build amd64 && cgo && !noasm

// relax_amd64.go — PAUSE hint between failed compare-and-swap attempts

package fusionatomic

/*
#ifdef __x86_64__
static inline void fio_cpu_pause() {
    __asm__ __volatile__("pause" ::: "memory");
}
#else
#error "This file requires x86-64 architecture"
#endif
*/
import "C"

// cpuRelax tells the core the caller is spinning on a contended line.
func cpuRelax() {
	C.fio_cpu_pause()
}
