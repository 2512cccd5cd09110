package synth

import "github.com/pkg/errors"

// Role is the part a qubit plays in a ladder register.
type Role int

const (
	RoleControl Role = iota
	RoleAncilla
	RoleTarget
)

func (r Role) String() string {
	switch r {
	case RoleControl:
		return "control"
	case RoleAncilla:
		return "ancilla"
	case RoleTarget:
		return "target"
	default:
		return "unknown"
	}
}

// MaxControls bounds the ladder arity, and with it the oracle bit width.
// A ladder over MaxControls controls already needs 2*MaxControls qubits.
const MaxControls = 1024

// Layout is the register of an n-controlled NOT: n controls, n-1 ancillas
// and one target, 2n qubits in total.
type Layout struct {
	n int
}

// NewLayout returns the layout for n controls. A ladder needs at least two
// and at most MaxControls.
func NewLayout(n int) (Layout, error) {
	if n < 2 || n > MaxControls {
		return Layout{}, errors.Wrapf(ErrInvalidArity, "%d controls (want 2 to %d)", n, MaxControls)
	}
	return Layout{n: n}, nil
}

// NumControls returns n.
func (l Layout) NumControls() int { return l.n }

// Size returns the register size, 2n.
func (l Layout) Size() int { return 2 * l.n }

// Controls returns the control qubits in order.
func (l Layout) Controls() []int { return indexRange(0, l.n) }

// Ancillas returns the scratch qubits in ladder order.
func (l Layout) Ancillas() []int { return indexRange(l.n, 2*l.n-1) }

// Target returns the target qubit.
func (l Layout) Target() int { return 2*l.n - 1 }

// Role reports the role of qubit q.
func (l Layout) Role(q int) Role {
	switch {
	case q < l.n:
		return RoleControl
	case q < l.Target():
		return RoleAncilla
	default:
		return RoleTarget
	}
}

func indexRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for q := lo; q < hi; q++ {
		out = append(out, q)
	}
	return out
}
