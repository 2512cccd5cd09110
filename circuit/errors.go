package circuit

import "github.com/pkg/errors"

// Construction errors. They are always returned wrapped with context; match
// them with errors.Is.
var (
	ErrInvalidSize     = errors.New("invalid register size")
	ErrIndexOutOfRange = errors.New("qubit index out of range")
	ErrInvalidOperands = errors.New("invalid gate operands")
	ErrInvalidMapping  = errors.New("invalid qubit mapping")
	ErrUnsupportedGate = errors.New("unsupported gate")
)
