//go:build linux

package selftest

import "golang.org/x/sys/unix"

// setAffinity binds the calling thread to cpu. Failures are ignored: an
// unpinned worker still contends, just less predictably.
func setAffinity(cpu int) {
	var set unix.CPUSet
	set.Set(cpu)
	_ = unix.SchedSetaffinity(0, &set)
}
