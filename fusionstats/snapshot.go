package fusionstats

import (
	"github.com/sugawarayuuta/sonnet"
)

// Sample is one counter value.
type Sample struct {
	Name  string `json:"name"`
	Value int32  `json:"value"`
}

// Snapshot is a point-in-time copy of a Set.
type Snapshot struct {
	Backend  string   `json:"backend,omitempty"`
	Counters []Sample `json:"counters"`
}

// Get returns the value recorded for name.
func (s Snapshot) Get(name string) (int32, bool) {
	for _, c := range s.Counters {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// JSON encodes the snapshot.
func (s Snapshot) JSON() ([]byte, error) {
	return sonnet.Marshal(s)
}

// ParseSnapshot decodes a snapshot produced by JSON.
func ParseSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := sonnet.Unmarshal(b, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
