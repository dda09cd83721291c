// ════════════════════════════════════════════════════════════════════════════════════════════════
// Driver Statistics
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: ioMemory VSL Port Layer
// Component: Named Atomic Counters
//
// Description:
//   A fixed table of named fusionatomic counters, one cache line each, created once at attach
//   time and updated lock-free from request contexts. Snapshots read every counter atomically
//   but not the table as a whole.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package fusionstats

import (
	"errors"
	"fmt"

	"github.com/prometheus/common/model"
	"github.com/snuf/iomemory-vsl-freebsd/fusionatomic"
	"golang.org/x/sys/cpu"
)

var (
	// ErrEmptyName is returned by NewSet for an empty counter name.
	ErrEmptyName = errors.New("fusionstats: empty counter name")
	// ErrDuplicateName is returned by NewSet when a name repeats.
	ErrDuplicateName = errors.New("fusionstats: duplicate counter name")
	// ErrInvalidName is returned by NewSet for a name that cannot be exported
	// as a metric ([a-zA-Z_:][a-zA-Z0-9_:]*).
	ErrInvalidName = errors.New("fusionstats: invalid counter name")
)

// slot keeps each counter on its own cache line so neighbouring statistics
// bumped from different cores do not false-share.
type slot struct {
	c fusionatomic.Atomic
	_ cpu.CacheLinePad
}

// Set is a fixed table of named counters. It never grows after NewSet.
type Set struct {
	names []string
	index map[string]int
	slots []slot
}

// NewSet builds a table holding one zeroed counter per name, in order. Names
// follow metric naming rules so every Set can back a Collector.
func NewSet(names ...string) (*Set, error) {
	s := &Set{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
		slots: make([]slot, len(names)),
	}
	for i, n := range names {
		if n == "" {
			return nil, ErrEmptyName
		}
		if !model.IsValidLegacyMetricName(model.LabelValue(n)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, n)
		}
		if _, dup := s.index[n]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		s.names[i] = n
		s.index[n] = i
	}
	return s, nil
}

// Counter returns the counter registered under name, or nil.
func (s *Set) Counter(name string) *fusionatomic.Atomic {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return &s.slots[i].c
}

// Names returns the counter names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len is the number of counters.
func (s *Set) Len() int { return len(s.slots) }

// Snapshot reads every counter.
func (s *Set) Snapshot() Snapshot {
	snap := Snapshot{Counters: make([]Sample, len(s.slots))}
	for i := range s.slots {
		snap.Counters[i] = Sample{Name: s.names[i], Value: s.slots[i].c.Read()}
	}
	return snap
}

// Drain zeroes every counter and returns the values it removed. Each counter
// is swapped individually, so no increment is lost between read and reset.
func (s *Set) Drain() Snapshot {
	snap := Snapshot{Counters: make([]Sample, len(s.slots))}
	for i := range s.slots {
		snap.Counters[i] = Sample{Name: s.names[i], Value: s.slots[i].c.Exchange(0)}
	}
	return snap
}
