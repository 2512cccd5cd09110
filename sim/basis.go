package sim

import (
	"github.com/pkg/errors"

	"qgrover/circuit"
)

// EvalBasis runs a circuit built only from X, CX, CCX and barriers on the
// basis state |input> and returns the resulting basis state. Such circuits
// map basis states to basis states, so no amplitudes are needed.
func EvalBasis(c *circuit.Circuit, input uint64) (uint64, error) {
	if c.NumQubits() > 64 {
		return 0, errors.Wrapf(ErrTooManyQubits, "%d qubits do not fit a basis index", c.NumQubits())
	}

	state := input
	for i, g := range c.Gates() {
		switch g.Type {
		case circuit.GateBarrier:
		case circuit.GateX, circuit.GateCX, circuit.GateCCX:
			if controlsSet(state, g.Controls) {
				state ^= 1 << uint(g.Target)
			}
		default:
			return 0, errors.Wrapf(ErrNotClassical, "gate %d is %s", i, g.Type)
		}
	}
	return state, nil
}

func controlsSet(state uint64, controls []int) bool {
	for _, c := range controls {
		if state&(1<<uint(c)) == 0 {
			return false
		}
	}
	return true
}
