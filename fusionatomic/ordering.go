// ordering.go — Named memory orderings and the per-operation contract table
package fusionatomic

// Ordering names the memory-ordering guarantee attached to an access.
type Ordering uint8

const (
	// Relaxed guarantees only that the access itself is indivisible.
	Relaxed Ordering = iota
	// Acquire keeps later accesses from being reordered before this one.
	Acquire
	// Release keeps earlier accesses from being reordered after this one.
	Release
	// SeqCst places the access in a single total order shared by all threads.
	SeqCst
)

func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "relaxed"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case SeqCst:
		return "seq_cst"
	}
	return "ordering(" + itoa(int(o)) + ")"
}

// Implies reports whether o is at least as strong as want.
// Acquire and Release are incomparable; SeqCst implies both.
func (o Ordering) Implies(want Ordering) bool {
	switch {
	case o == want, want == Relaxed, o == SeqCst:
		return true
	}
	return false
}

// Op identifies one operation of the Counter set.
type Op uint8

const (
	OpSet Op = iota
	OpRead
	OpAdd
	OpAddReturn
	OpInc
	OpIncReturn
	OpDec
	OpDecReturn
	OpSub
	OpSubReturn
	OpExchange

	opCount
)

var opNames = [opCount]string{
	OpSet:       "set",
	OpRead:      "read",
	OpAdd:       "add",
	OpAddReturn: "add_return",
	OpInc:       "increment",
	OpIncReturn: "increment_return",
	OpDec:       "decrement",
	OpDecReturn: "decrement_return",
	OpSub:       "sub",
	OpSubReturn: "sub_return",
	OpExchange:  "exchange",
}

// guarantees is the ordering every backend promises per operation.
// Exchange is deliberately weaker than the arithmetic family.
var guarantees = [opCount]Ordering{
	OpSet:       Relaxed,
	OpRead:      Relaxed,
	OpAdd:       SeqCst,
	OpAddReturn: SeqCst,
	OpInc:       SeqCst,
	OpIncReturn: SeqCst,
	OpDec:       SeqCst,
	OpDecReturn: SeqCst,
	OpSub:       SeqCst,
	OpSubReturn: SeqCst,
	OpExchange:  Acquire,
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "op(" + itoa(int(op)) + ")"
}

// Ops returns every operation in declaration order.
func Ops() []Op {
	ops := make([]Op, opCount)
	for i := range ops {
		ops[i] = Op(i)
	}
	return ops
}

// Guarantee returns the ordering callers may rely on for op. Unknown
// operations report Relaxed.
func Guarantee(op Op) Ordering {
	if op < opCount {
		return guarantees[op]
	}
	return Relaxed
}

// itoa avoids pulling strconv into the leaf package.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
