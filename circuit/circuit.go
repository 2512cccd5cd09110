// Package circuit models quantum circuits as ordered gate sequences over a
// fixed-size, zero-indexed qubit register.
//
// A Circuit is a value: builders fill a fresh circuit with Apply, and every
// combination of existing circuits goes through Compose, which never touches
// its inputs.
package circuit

import (
	"github.com/pkg/errors"
)

// Position selects where Compose places the added operations.
type Position int

const (
	// After appends the addition behind every operation of the base.
	After Position = iota
	// Before places the addition ahead of every operation of the base.
	Before
)

func (p Position) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Circuit holds an ordered gate sequence over NumQubits qubits.
type Circuit struct {
	numQubits int
	gates     []Gate
}

// New creates an empty circuit over size qubits.
func New(size int) (*Circuit, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "new circuit of %d qubits", size)
	}
	return &Circuit{numQubits: size}, nil
}

// NumQubits returns the register size.
func (c *Circuit) NumQubits() int {
	return c.numQubits
}

// Len returns the number of operations, barriers included.
func (c *Circuit) Len() int {
	return len(c.gates)
}

// Gates returns a copy of the operation sequence.
func (c *Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g.clone()
	}
	return out
}

// Apply appends g to the circuit in place. Builders use it to fill a circuit
// they just created; shared circuits should be combined with Compose.
func (c *Circuit) Apply(g Gate) error {
	if err := c.validate(g); err != nil {
		return err
	}
	c.gates = append(c.gates, g.clone())
	return nil
}

// ApplyAll applies each gate in order, stopping at the first failure.
func (c *Circuit) ApplyAll(gates ...Gate) error {
	for _, g := range gates {
		if err := c.Apply(g); err != nil {
			return err
		}
	}
	return nil
}

// validate checks g against the register and the operand rules.
func (c *Circuit) validate(g Gate) error {
	if g.IsBarrier() {
		if len(g.Span) == 0 {
			return errors.Wrap(ErrInvalidOperands, "barrier spans no qubits")
		}
		if len(g.Controls) > 0 {
			return errors.Wrap(ErrInvalidOperands, "barrier has controls")
		}
	} else {
		if len(g.Span) > 0 {
			return errors.Wrapf(ErrInvalidOperands, "%s has a barrier span", g.Type)
		}
		arity, ok := controlArity[g.Type]
		if !ok {
			return errors.Wrapf(ErrUnsupportedGate, "gate %q", g.Type)
		}
		if len(g.Controls) != arity {
			return errors.Wrapf(ErrInvalidOperands, "%s takes %d controls, got %d", g.Type, arity, len(g.Controls))
		}
	}

	seen := make(map[int]bool, len(g.Qubits()))
	for _, q := range g.Qubits() {
		if q < 0 || q >= c.numQubits {
			return errors.Wrapf(ErrIndexOutOfRange, "%s references q[%d] in a %d-qubit register", g.Type, q, c.numQubits)
		}
		if seen[q] {
			return errors.Wrapf(ErrInvalidOperands, "%s uses q[%d] more than once", g.Type, q)
		}
		seen[q] = true
	}
	return nil
}

// Identity returns the identity qubit map [0, n).
func Identity(n int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return m
}

// Compose returns a new circuit over c's register holding addition's
// operations, remapped through qubitMap, placed before or after c's own.
// A nil qubitMap is the identity. Neither input is modified.
func (c *Circuit) Compose(addition *Circuit, qubitMap []int, pos Position) (*Circuit, error) {
	if qubitMap == nil {
		qubitMap = Identity(addition.numQubits)
	}
	if err := c.checkMapping(addition, qubitMap); err != nil {
		return nil, err
	}

	added := make([]Gate, len(addition.gates))
	for i, g := range addition.gates {
		added[i] = g.remap(qubitMap)
	}

	out := &Circuit{
		numQubits: c.numQubits,
		gates:     make([]Gate, 0, len(c.gates)+len(added)),
	}
	switch pos {
	case Before:
		out.gates = append(out.gates, added...)
		out.gates = append(out.gates, c.Gates()...)
	case After:
		out.gates = append(out.gates, c.Gates()...)
		out.gates = append(out.gates, added...)
	default:
		return nil, errors.Errorf("unknown compose position %d", pos)
	}
	return out, nil
}

// checkMapping requires qubitMap to be total over addition's register,
// injective, and to land inside c's register.
func (c *Circuit) checkMapping(addition *Circuit, qubitMap []int) error {
	if len(qubitMap) != addition.numQubits {
		return errors.Wrapf(ErrInvalidMapping, "map has %d entries for a %d-qubit circuit", len(qubitMap), addition.numQubits)
	}
	used := make(map[int]int, len(qubitMap))
	for from, to := range qubitMap {
		if to < 0 || to >= c.numQubits {
			return errors.Wrapf(ErrInvalidMapping, "q[%d] maps to q[%d] outside a %d-qubit register", from, to, c.numQubits)
		}
		if prev, dup := used[to]; dup {
			return errors.Wrapf(ErrInvalidMapping, "q[%d] and q[%d] both map to q[%d]", prev, from, to)
		}
		used[to] = from
	}
	return nil
}

// Clone returns an independent copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	return &Circuit{numQubits: c.numQubits, gates: c.Gates()}
}

// Equal reports whether both circuits have the same register size and the
// same operation sequence.
func (c *Circuit) Equal(o *Circuit) bool {
	if c.numQubits != o.numQubits || len(c.gates) != len(o.gates) {
		return false
	}
	for i := range c.gates {
		if !c.gates[i].Equal(o.gates[i]) {
			return false
		}
	}
	return true
}

// Inverse returns the circuit undoing c. Every primitive is self-inverse, so
// this is the reversed sequence.
func (c *Circuit) Inverse() *Circuit {
	out := &Circuit{numQubits: c.numQubits, gates: make([]Gate, len(c.gates))}
	for i, g := range c.gates {
		out.gates[len(c.gates)-1-i] = g.clone()
	}
	return out
}

// Counts returns how many operations of each type the circuit holds.
func (c *Circuit) Counts() map[GateType]int {
	counts := make(map[GateType]int)
	for _, g := range c.gates {
		counts[g.Type]++
	}
	return counts
}
