package synth

import (
	"github.com/pkg/errors"

	"qgrover/circuit"
)

// FlipMask returns a circuit over size qubits with a NOT on qubit i for
// every bits[i] == 0, or every bits[i] == 1 when invert is set. The mask is
// its own inverse.
func FlipMask(size int, bits []int, invert bool) (*circuit.Circuit, error) {
	if err := checkBits(bits); err != nil {
		return nil, err
	}
	c, err := circuit.New(size)
	if err != nil {
		return nil, err
	}

	flip := 0
	if invert {
		flip = 1
	}
	for i, b := range bits {
		if b != flip {
			continue
		}
		if err := c.Apply(circuit.X(i)); err != nil {
			return nil, errors.Wrap(err, "flip mask")
		}
	}
	return c, nil
}

// layer returns a circuit over size qubits applying gate to each of qubits.
func layer(size int, gate func(int) circuit.Gate, qubits []int) (*circuit.Circuit, error) {
	c, err := circuit.New(size)
	if err != nil {
		return nil, err
	}
	for _, q := range qubits {
		if err := c.Apply(gate(q)); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// fence returns a circuit over size qubits holding one barrier on qubits.
func fence(size int, qubits []int) (*circuit.Circuit, error) {
	c, err := circuit.New(size)
	if err != nil {
		return nil, err
	}
	if err := c.Apply(circuit.Barrier(qubits...)); err != nil {
		return nil, err
	}
	return c, nil
}
