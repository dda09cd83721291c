package utils

import (
	"os"
	"unsafe"
)

///////////////////////////////////////////////////////////////////////////////
// Conversion Utilities — Zero-Alloc Casts
///////////////////////////////////////////////////////////////////////////////

// B2s converts a []byte to a string **without** allocation.
// ⚠️ Caller must ensure the input slice remains valid and unchanged.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// S2b is the inverse of B2s. The result must never be written to.
//
//go:nosplit
//go:inline
func S2b(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Itoa formats a signed integer without strconv or fmt.
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	u := uint64(n)
	if n < 0 {
		u = uint64(-n)
	}
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if n < 0 {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

///////////////////////////////////////////////////////////////////////////////
// Output — Direct Descriptor Writes
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes msg to stderr as-is. Callers pre-concatenate the line.
//
//go:inline
func PrintWarning(msg string) {
	_, _ = os.Stderr.Write(S2b(msg))
}

// PrintInfo writes msg to stdout as-is.
//
//go:inline
func PrintInfo(msg string) {
	_, _ = os.Stdout.Write(S2b(msg))
}
