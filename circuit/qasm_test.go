package circuit

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToQASM(t *testing.T) {
	c := mustCircuit(t, 4, X(0), H(1), Barrier(0, 1), CX(0, 3), CCX(0, 1, 2))

	want := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[4];

x q[0];
h q[1];
barrier q[0], q[1];
cx q[0], q[3];
ccx q[0], q[1], q[2];
`
	assert.Equal(t, want, c.ToQASM())
}

func TestQASMRoundTrip(t *testing.T) {
	c := mustCircuit(t, 5, H(0), H(1), CCX(0, 1, 3), CX(3, 4), Barrier(0, 1, 2, 3, 4), X(2))

	parsed, err := ParseQASM(c.ToQASM())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(c), "round trip:\n%s", parsed.ToQASM())
}

func TestParseQASMAcceptsCommonForms(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";
// prepared by hand
qreg q[3];
creg c[3];
X q[0];
cx q[0],q[1];
barrier q;
ccx q[0], q[1], q[2]
`
	c, err := ParseQASM(qasm)
	require.NoError(t, err)
	assert.Equal(t, []Gate{X(0), CX(0, 1), Barrier(0, 1, 2), CCX(0, 1, 2)}, c.Gates())
}

func TestParseQASMErrors(t *testing.T) {
	tests := []struct {
		name string
		qasm string
		want error
	}{
		{"undefined n gate", "qreg q[2];\nn q[0];", ErrUnsupportedGate},
		{"unsupported two qubit", "qreg q[2];\ncz q[0], q[1];", ErrUnsupportedGate},
		{"out of range", "qreg q[2];\nx q[2];", ErrIndexOutOfRange},
		{"cx collision", "qreg q[2];\ncx q[1], q[1];", ErrInvalidOperands},
		{"no register", "x q[0];", nil},
		{"empty register", "qreg q[0];", ErrInvalidSize},
		{"empty text", "", ErrInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQASM(tt.qasm)
			require.Error(t, err)
			if tt.want != nil {
				assert.True(t, errors.Is(err, tt.want), "%v", err)
			}
		})
	}
}

func TestParseQASMReportsLine(t *testing.T) {
	_, err := ParseQASM("qreg q[2];\nh q[0];\nn q[1];")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "line 3"), err.Error())
}
