package fusionatomic

// Counter is the operation set every backend provides. All methods are safe
// for concurrent use on the same counter without external locking.
//
// Arithmetic wraps in two's complement. No method blocks, allocates or fails.
type Counter interface {
	// Set stores v. Only the store itself is atomic; no ordering is implied.
	Set(v int32)
	// Read loads the current value. Same ordering as Set.
	Read() int32

	Add(delta int32)
	AddReturn(delta int32) int32
	Inc()
	IncReturn() int32
	Dec()
	DecReturn() int32
	Sub(delta int32)
	SubReturn(delta int32) int32

	// Exchange stores v and returns the previous value. It carries acquire
	// ordering only: later accesses cannot move before it, but earlier stores
	// by the caller are not guaranteed to be visible to others first.
	Exchange(v int32) int32
}

// noCopy lets `go vet -copylocks` flag counters copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

var (
	_ Counter = (*FetchAdd)(nil)
	_ Counter = (*CASLoop)(nil)
	_ Counter = (*Atomic)(nil)
)
