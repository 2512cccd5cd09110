package synth

import (
	"github.com/pkg/errors"

	"qgrover/circuit"
)

// Builder is a named circuit constructor taking integer arguments. The CLI
// and the viewer both pick circuits from Builders.
type Builder struct {
	Name    string
	Usage   string
	Args    []string // argument names, required ones first
	MinArgs int
	build   func(args []int) (*circuit.Circuit, error)
}

// Builders lists every circuit constructor by name.
var Builders = []Builder{
	{
		Name:    "mcx",
		Usage:   "n-controlled NOT (Toffoli ladder)",
		Args:    []string{"n"},
		MinArgs: 1,
		build: func(args []int) (*circuit.Circuit, error) {
			return LadderMCX(args[0])
		},
	},
	{
		Name:    "oracle",
		Usage:   "equality oracle marking value",
		Args:    []string{"value", "width"},
		MinArgs: 1,
		build: func(args []int) (*circuit.Circuit, error) {
			width := AutoWidth
			if len(args) > 1 {
				width = args[1]
			}
			return BuildOracle(args[0], width)
		},
	},
	{
		Name:    "diffuser",
		Usage:   "Grover diffusion operator",
		Args:    []string{"n"},
		MinArgs: 1,
		build: func(args []int) (*circuit.Circuit, error) {
			return BuildDiffuser(args[0])
		},
	},
}

// Lookup finds a builder by name.
func Lookup(name string) (Builder, bool) {
	for _, b := range Builders {
		if b.Name == name {
			return b, true
		}
	}
	return Builder{}, false
}

// Build checks the argument count and runs the builder.
func (b Builder) Build(args ...int) (*circuit.Circuit, error) {
	if len(args) < b.MinArgs || len(args) > len(b.Args) {
		return nil, errors.Errorf("%s takes %d to %d arguments, got %d", b.Name, b.MinArgs, len(b.Args), len(args))
	}
	return b.build(args)
}

// BuildLayout runs the builder and returns the register layout of the result
// with it. Every builder emits a ladder register of 2n qubits.
func (b Builder) BuildLayout(args ...int) (*circuit.Circuit, Layout, error) {
	c, err := b.Build(args...)
	if err != nil {
		return nil, Layout{}, err
	}
	layout, err := NewLayout(c.NumQubits() / 2)
	if err != nil {
		return nil, Layout{}, errors.Wrapf(err, "%s layout", b.Name)
	}
	return c, layout, nil
}
