//go:build cgo && fusion_sync_builtins

// syncbuiltin.go — GCC __sync builtin backend
//
// Delegates every read-modify-write to the compiler's __sync builtins. The
// preamble refuses to compile on a C toolchain that does not provide them;
// there is deliberately no non-atomic fallback.

package fusionatomic

/*
#include <stdint.h>

#if !defined(__GNUC__) || (__GNUC__ < 4) || (__GNUC__ == 4 && __GNUC_MINOR__ < 2)
#error "fusionatomic: UnsupportedToolchain: fusion_sync_builtins needs a GCC >= 4.2 compatible compiler (__sync builtins)"
#endif

static inline int32_t fio_add_fetch(int32_t *p, int32_t v) {
    return __sync_add_and_fetch((volatile int32_t *)p, v);
}

static inline int32_t fio_sub_fetch(int32_t *p, int32_t v) {
    return __sync_sub_and_fetch((volatile int32_t *)p, v);
}

// __sync_lock_test_and_set is only an acquire barrier; the leading full
// barrier is what this backend adds on top.
static inline int32_t fio_xchg(int32_t *p, int32_t v) {
    __sync_synchronize();
    return __sync_lock_test_and_set((volatile int32_t *)p, v);
}
*/
import "C"

import "unsafe"

// SyncBuiltin is the cgo realization of Counter. Set and Read stay on the Go
// side so the Go memory model still sees them as atomic accesses.
type SyncBuiltin struct {
	_     noCopy
	value int32
}

var _ Counter = (*SyncBuiltin)(nil)

func (c *SyncBuiltin) ptr() *C.int32_t { return (*C.int32_t)(unsafe.Pointer(&c.value)) }

func (c *SyncBuiltin) Set(v int32) { store(&c.value, v, Guarantee(OpSet)) }

func (c *SyncBuiltin) Read() int32 { return load(&c.value, Guarantee(OpRead)) }

func (c *SyncBuiltin) Add(delta int32) { C.fio_add_fetch(c.ptr(), C.int32_t(delta)) }

func (c *SyncBuiltin) AddReturn(delta int32) int32 {
	return int32(C.fio_add_fetch(c.ptr(), C.int32_t(delta)))
}

func (c *SyncBuiltin) Inc() { C.fio_add_fetch(c.ptr(), 1) }

func (c *SyncBuiltin) IncReturn() int32 { return int32(C.fio_add_fetch(c.ptr(), 1)) }

func (c *SyncBuiltin) Dec() { C.fio_sub_fetch(c.ptr(), 1) }

func (c *SyncBuiltin) DecReturn() int32 { return int32(C.fio_sub_fetch(c.ptr(), 1)) }

func (c *SyncBuiltin) Sub(delta int32) { C.fio_sub_fetch(c.ptr(), C.int32_t(delta)) }

func (c *SyncBuiltin) SubReturn(delta int32) int32 {
	return int32(C.fio_sub_fetch(c.ptr(), C.int32_t(delta)))
}

// Exchange issues a full barrier ahead of the acquire-only swap. Callers must
// still rely on Guarantee(OpExchange), not on this extra fence.
func (c *SyncBuiltin) Exchange(v int32) int32 {
	return int32(C.fio_xchg(c.ptr(), C.int32_t(v)))
}
