package synth

import (
	"github.com/pkg/errors"

	"qgrover/circuit"
)

// BuildOracle returns the equality oracle for value: over 2n qubits, where n
// is the bit width, it flips the target iff the controls encode value
// (control 0 holds the most significant bit). Ancillas return to |0>.
//
// Stages: flip mask, barrier, ladder, flip mask, barrier.
func BuildOracle(value, width int) (*circuit.Circuit, error) {
	bits, err := ToBits(value, width)
	if err != nil {
		return nil, errors.Wrap(err, "oracle")
	}
	n := len(bits)

	core, err := LadderMCX(n)
	if err != nil {
		return nil, errors.Wrapf(err, "oracle for %s", FormatBits(bits))
	}
	mask, err := FlipMask(n, bits, false)
	if err != nil {
		return nil, err
	}
	barrier, err := fence(n, circuit.Identity(n))
	if err != nil {
		return nil, err
	}

	controls := circuit.Identity(n)
	return chain(core,
		stage{barrier, controls, circuit.Before},
		stage{mask, controls, circuit.Before},
		stage{mask, controls, circuit.After},
		stage{barrier, controls, circuit.After},
	)
}

// BuildDiffuser returns the inversion-about-the-mean operator over the 2n
// qubit ladder register. The ladder is wrapped in an all-NOT layer and then
// a Hadamard layer on the controls, each undone on the way out.
func BuildDiffuser(n int) (*circuit.Circuit, error) {
	core, err := LadderMCX(n)
	if err != nil {
		return nil, errors.Wrap(err, "diffuser")
	}
	controls := circuit.Identity(n)

	hadamards, err := layer(n, circuit.H, controls)
	if err != nil {
		return nil, err
	}
	nots, err := layer(n, circuit.X, controls)
	if err != nil {
		return nil, err
	}
	barrier, err := fence(n, controls)
	if err != nil {
		return nil, err
	}

	return chain(core,
		stage{barrier, controls, circuit.Before},
		stage{nots, controls, circuit.Before},
		stage{hadamards, controls, circuit.Before},
		stage{barrier, controls, circuit.After},
		stage{nots, controls, circuit.After},
		stage{hadamards, controls, circuit.After},
	)
}

type stage struct {
	c   *circuit.Circuit
	m   []int
	pos circuit.Position
}

// chain composes each stage onto base in order.
func chain(base *circuit.Circuit, stages ...stage) (*circuit.Circuit, error) {
	out := base
	for _, s := range stages {
		next, err := out.Compose(s.c, s.m, s.pos)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
