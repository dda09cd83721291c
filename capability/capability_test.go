package capability

import (
	"runtime"
	"testing"

	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
)

func TestProbeNamesCompiledBackend(t *testing.T) {
	r := Probe()
	if r.Backend != fusionatomic.Backend {
		t.Fatalf("Backend = %q, want %q", r.Backend, fusionatomic.Backend)
	}
	if r.GOARCH != runtime.GOARCH || r.GOOS != runtime.GOOS {
		t.Fatalf("target = %s/%s", r.GOOS, r.GOARCH)
	}
	if r.CacheLine <= 0 {
		t.Fatalf("CacheLine = %d", r.CacheLine)
	}
	if runtime.GOARCH == "amd64" && !r.NativeFetchAdd {
		t.Fatal("amd64 always has LOCK XADD")
	}
}

func TestLinesOrder(t *testing.T) {
	lines := Report{GOOS: "freebsd", GOARCH: "amd64", Backend: "casloop", Features: []string{"sse2", "avx2"}}.Lines()
	want := []string{"arch", "backend", "cgo", "native_fetch_add", "native_swap", "cache_line", "cpu_features"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i, k := range want {
		if lines[i][0] != k {
			t.Errorf("line %d key = %q, want %q", i, lines[i][0], k)
		}
	}
	if lines[0][1] != "freebsd/amd64" || lines[6][1] != "sse2,avx2" {
		t.Errorf("unexpected values %v", lines)
	}
	if empty := (Report{}).Lines(); empty[6][1] != "none" {
		t.Errorf("no features should render as none, got %q", empty[6][1])
	}
}
