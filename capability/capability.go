// capability.go — What the build and the CPU offer the atomic counter
//
// The report is informational: backend choice is fixed at build time and is
// never revisited from these runtime probes.

package capability

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
	"golang.org/x/sys/cpu"
)

// Report describes the compiled backend and the target's atomic support.
type Report struct {
	GOARCH  string
	GOOS    string
	Backend string
	Cgo     bool

	// NativeFetchAdd is true when one instruction performs a 32-bit
	// fetch-and-add (LOCK XADD on x86, LDADD with arm64 LSE).
	NativeFetchAdd bool
	// NativeSwap is true when one instruction performs a 32-bit exchange.
	NativeSwap bool
	// CacheLine is the padding fusionstats uses between counters.
	CacheLine int

	Features []string
}

// Probe inspects the running target.
func Probe() Report {
	r := Report{
		GOARCH:    runtime.GOARCH,
		GOOS:      runtime.GOOS,
		Backend:   fusionatomic.Backend,
		Cgo:       cgoEnabled,
		CacheLine: cacheLine(),
	}
	switch runtime.GOARCH {
	case "386", "amd64":
		r.NativeFetchAdd, r.NativeSwap = true, true
		if cpu.X86.HasSSE2 {
			r.Features = append(r.Features, "sse2")
		}
		if cpu.X86.HasAVX2 {
			r.Features = append(r.Features, "avx2")
		}
	case "arm64":
		r.NativeFetchAdd, r.NativeSwap = cpu.ARM64.HasATOMICS, cpu.ARM64.HasATOMICS
		if cpu.ARM64.HasATOMICS {
			r.Features = append(r.Features, "lse")
		}
	case "s390x":
		// LOAD AND ADD is part of the interlocked-access facility.
		r.NativeFetchAdd = true
	}
	return r
}

// Lines renders the report as "key: value" pairs in a fixed order.
func (r Report) Lines() [][2]string {
	features := "none"
	if len(r.Features) > 0 {
		features = strings.Join(r.Features, ",")
	}
	return [][2]string{
		{"arch", r.GOOS + "/" + r.GOARCH},
		{"backend", r.Backend},
		{"cgo", strconv.FormatBool(r.Cgo)},
		{"native_fetch_add", strconv.FormatBool(r.NativeFetchAdd)},
		{"native_swap", strconv.FormatBool(r.NativeSwap)},
		{"cache_line", strconv.Itoa(r.CacheLine)},
		{"cpu_features", features},
	}
}
