// Package sim executes circuits: a statevector simulator for the four
// primitives, a classical evaluator for permutation circuits and a shot
// sampler producing outcome histograms.
//
// Qubit q is bit q of a basis-state index, so outcome labels read with the
// highest qubit on the left.
package sim

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"qgrover/circuit"
)

// MaxQubits bounds the register size the statevector simulator accepts.
const MaxQubits = 22

var (
	ErrTooManyQubits = errors.New("register too large to simulate")
	ErrNotClassical  = errors.New("circuit is not a classical permutation")
	ErrInvalidShots  = errors.New("invalid shot count")
)

type Complex = complex128

type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns |0...0> over numQubits qubits.
func NewStateVector(numQubits int) (*StateVector, error) {
	return NewBasisState(numQubits, 0)
}

// NewBasisState returns the computational basis state |index>.
func NewBasisState(numQubits int, index uint64) (*StateVector, error) {
	if numQubits <= 0 {
		return nil, errors.Wrapf(circuit.ErrInvalidSize, "%d qubits", numQubits)
	}
	if numQubits > MaxQubits {
		return nil, errors.Wrapf(ErrTooManyQubits, "%d qubits (max %d)", numQubits, MaxQubits)
	}
	n := 1 << numQubits
	if index >= uint64(n) {
		return nil, errors.Wrapf(circuit.ErrIndexOutOfRange, "basis state %d of %d", index, n)
	}
	amps := make([]Complex, n)
	amps[index] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}, nil
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply applies a single gate. Barriers are no-ops.
func (s *StateVector) Apply(g circuit.Gate) error {
	for _, q := range g.Qubits() {
		if q < 0 || q >= s.NumQubits {
			return errors.Wrapf(circuit.ErrIndexOutOfRange, "%s on a %d-qubit state", g, s.NumQubits)
		}
	}
	switch g.Type {
	case circuit.GateBarrier:
	case circuit.GateX:
		s.applyX(g.Target)
	case circuit.GateH:
		s.applyH(g.Target)
	case circuit.GateCX:
		s.applyCX(g.Controls[0], g.Target)
	case circuit.GateCCX:
		s.applyCCX(g.Controls[0], g.Controls[1], g.Target)
	default:
		return errors.Wrapf(circuit.ErrUnsupportedGate, "%q", g.Type)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	s.applyControlledX(1<<control, target)
}

func (s *StateVector) applyCCX(control1, control2, target int) {
	s.applyControlledX(1<<control1|1<<control2, target)
}

// applyControlledX swaps the target amplitudes wherever every bit of mask is set.
func (s *StateVector) applyControlledX(mask, target int) {
	n := len(s.Amplitudes)
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&mask == mask && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Probabilities returns |amplitude|^2 for every basis state.
func (s *StateVector) Probabilities() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp * cmplx.Conj(amp))
	}
	return probs
}

type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, prob := range s.Probabilities() {
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}
	return probs
}

// Marginal returns the outcome distribution of the listed qubits alone.
// Bit k of a result index is the value of qubits[k].
func (s *StateVector) Marginal(qubits []int) []float64 {
	out := make([]float64, 1<<len(qubits))
	for i, prob := range s.Probabilities() {
		idx := 0
		for k, q := range qubits {
			if i&(1<<q) != 0 {
				idx |= 1 << k
			}
		}
		out[idx] += prob
	}
	return out
}

// Simulate runs c on initial, or on |0...0> when initial is nil. The initial
// state is not modified.
func Simulate(c *circuit.Circuit, initial *StateVector) (*StateVector, error) {
	var state *StateVector
	if initial == nil {
		var err error
		if state, err = NewStateVector(c.NumQubits()); err != nil {
			return nil, err
		}
	} else {
		if initial.NumQubits != c.NumQubits() {
			return nil, errors.Errorf("state has %d qubits, circuit has %d", initial.NumQubits, c.NumQubits())
		}
		state = initial.Clone()
	}

	for i, g := range c.Gates() {
		if err := state.Apply(g); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}
	return state, nil
}
