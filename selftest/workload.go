// workload.go — Deterministic per-worker delta streams
//
// Each worker's stream is SHAKE128(seed || 0x00 || worker) read out one byte
// per delta, mapped to [1,255]. Every backend replays identical streams, so
// expected totals are known before the run.

package selftest

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Deltas returns n deltas in [1,255] for worker w.
func Deltas(seed string, w, n int) []int32 {
	h := sha3.NewShake128()
	h.Write([]byte(seed))
	var tag [9]byte
	binary.LittleEndian.PutUint64(tag[1:], uint64(w))
	h.Write(tag[:])

	raw := make([]byte, n)
	h.Read(raw)
	out := make([]int32, n)
	for i, b := range raw {
		out[i] = int32(b%255) + 1
	}
	return out
}

func sum(ds []int32) int64 {
	var s int64
	for _, d := range ds {
		s += int64(d)
	}
	return s
}
