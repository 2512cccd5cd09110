package synth

import "github.com/pkg/errors"

var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrWidthTooSmall = errors.New("width too small")
	ErrWidthTooLarge = errors.New("width too large")
	ErrInvalidArity  = errors.New("invalid ladder arity")
)
