// Package synth builds the circuits used by Grover search: a multi-controlled
// NOT synthesized as a Toffoli ladder, the equality oracle and the diffuser.
package synth

import (
	"qgrover/circuit"
)

// LadderMCX returns a circuit over 2n qubits that flips the target iff all n
// controls are 1 (see Layout for the register).
//
// The compute sweep ANDs the controls pairwise into the ancillas, one
// Toffoli per step, so the last ancilla ends up holding the AND of every
// control. A CNOT copies it onto the target, then the same Toffolis run in
// reverse to return every ancilla to |0>. That costs 2n-2 Toffolis and one
// CNOT.
func LadderMCX(n int) (*circuit.Circuit, error) {
	l, err := NewLayout(n)
	if err != nil {
		return nil, err
	}
	c, err := circuit.New(l.Size())
	if err != nil {
		return nil, err
	}

	compute := ladderSteps(l)
	uncompute := make([]circuit.Gate, len(compute))
	for i, g := range compute {
		uncompute[len(compute)-1-i] = g
	}

	anc := l.Ancillas()
	if err := c.ApplyAll(compute...); err != nil {
		return nil, err
	}
	if err := c.Apply(circuit.CX(anc[len(anc)-1], l.Target())); err != nil {
		return nil, err
	}
	if err := c.ApplyAll(uncompute...); err != nil {
		return nil, err
	}
	return c, nil
}

// ladderSteps returns the compute sweep. After step k, ancilla k holds the
// AND of controls 0..k+1.
func ladderSteps(l Layout) []circuit.Gate {
	ctrl, anc := l.Controls(), l.Ancillas()
	steps := make([]circuit.Gate, 0, len(anc))
	steps = append(steps, circuit.CCX(ctrl[0], ctrl[1], anc[0]))
	for c := 2; c < l.NumControls(); c++ {
		steps = append(steps, circuit.CCX(ctrl[c], anc[c-2], anc[c-1]))
	}
	return steps
}
