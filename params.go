package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// argPattern matches a single builder argument: a decimal integer, or a
// binary literal written as 0b0101 so oracle targets can be typed as bits.
var argPattern = regexp.MustCompile(`^(?:0[bB]([01]+)|(-?\d+))$`)

// parseArg parses one builder argument.
func parseArg(s string) (int, error) {
	s = strings.TrimSpace(s)
	matches := argPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, errors.Errorf("invalid argument %q: use an integer or 0b bits", s)
	}
	if matches[1] != "" {
		v, err := strconv.ParseInt(matches[1], 2, 64)
		return int(v), errors.Wrapf(err, "argument %q", s)
	}
	v, err := strconv.Atoi(matches[2])
	return v, errors.Wrapf(err, "argument %q", s)
}

// parseArgs parses a comma or whitespace separated argument list such as
// "5,4" or "0b101 4". Empty input yields no arguments.
func parseArgs(input string) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return parseArgList(fields)
}

func parseArgList(fields []string) ([]int, error) {
	args := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := parseArg(f)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// formatArgs is the inverse of parseArgs for display.
func formatArgs(args []int) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// parseBitString parses an input pattern such as "0101" for preparing controls.
func parseBitString(s string) ([]int, error) {
	bits := make([]int, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		default:
			return nil, errors.Errorf("invalid bit %q at position %d", r, i)
		}
	}
	return bits, nil
}
