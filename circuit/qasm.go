package circuit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*;?$`)
	twoQubitRegex   = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*;?$`)
	threeQubitRegex = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*,\s*q\[(\d+)\]\s*;?$`)
	qregRegex       = regexp.MustCompile(`^qreg\s+q\[(\d+)\]\s*;?$`)
	barrierRegex    = regexp.MustCompile(`^barrier\s+(.+?)\s*;?$`)
	qubitRefRegex   = regexp.MustCompile(`^q\[(\d+)\]$`)
)

// ToQASM renders the circuit as OpenQASM 2.0.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.numQubits)

	for _, g := range c.gates {
		switch g.Type {
		case GateBarrier:
			qubits := make([]string, len(g.Span))
			for i, q := range g.Span {
				qubits[i] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(qubits, ", "))
		case GateCCX:
			fmt.Fprintf(&sb, "ccx q[%d], q[%d], q[%d];\n", g.Controls[0], g.Controls[1], g.Target)
		case GateCX:
			fmt.Fprintf(&sb, "cx q[%d], q[%d];\n", g.Controls[0], g.Target)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", strings.ToLower(string(g.Type)), g.Target)
		}
	}
	return sb.String()
}

// ParseQASM builds a circuit from OpenQASM 2.0 text using the x, h, cx, ccx
// and barrier instructions. Any other gate is rejected: there is no sensible
// meaning to guess for it.
func ParseQASM(qasm string) (*Circuit, error) {
	var c *Circuit

	for i, line := range strings.Split(qasm, "\n") {
		lineNo := i + 1
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") {
			continue
		}

		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			if c != nil {
				return nil, errors.Errorf("line %d: register declared twice", lineNo)
			}
			n, _ := strconv.Atoi(matches[1])
			var err error
			if c, err = New(n); err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			continue
		}

		if c == nil {
			return nil, errors.Errorf("line %d: instruction before qreg declaration", lineNo)
		}

		g, err := parseGateLine(line, c.numQubits)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if err := c.Apply(g); err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
	}

	if c == nil {
		return nil, errors.Wrap(ErrInvalidSize, "no qreg declaration")
	}
	return c, nil
}

func parseGateLine(line string, numQubits int) (Gate, error) {
	if matches := barrierRegex.FindStringSubmatch(line); matches != nil {
		return parseBarrier(matches[1], numQubits)
	}

	if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		if name != "ccx" {
			return Gate{}, errors.Wrapf(ErrUnsupportedGate, "%q", name)
		}
		c1, _ := strconv.Atoi(matches[2])
		c2, _ := strconv.Atoi(matches[3])
		t, _ := strconv.Atoi(matches[4])
		return CCX(c1, c2, t), nil
	}

	if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		if name != "cx" {
			return Gate{}, errors.Wrapf(ErrUnsupportedGate, "%q", name)
		}
		ctrl, _ := strconv.Atoi(matches[2])
		t, _ := strconv.Atoi(matches[3])
		return CX(ctrl, t), nil
	}

	if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
		q, _ := strconv.Atoi(matches[2])
		switch strings.ToLower(matches[1]) {
		case "x":
			return X(q), nil
		case "h":
			return H(q), nil
		default:
			return Gate{}, errors.Wrapf(ErrUnsupportedGate, "%q", matches[1])
		}
	}

	return Gate{}, errors.Wrapf(ErrUnsupportedGate, "cannot parse %q", line)
}

// parseBarrier accepts either the whole register ("barrier q;") or a list
// of qubit references.
func parseBarrier(args string, numQubits int) (Gate, error) {
	if strings.TrimSpace(args) == "q" {
		return Barrier(Identity(numQubits)...), nil
	}
	var qubits []int
	for _, ref := range strings.Split(args, ",") {
		matches := qubitRefRegex.FindStringSubmatch(strings.TrimSpace(ref))
		if matches == nil {
			return Gate{}, errors.Wrapf(ErrInvalidOperands, "barrier operand %q", ref)
		}
		q, _ := strconv.Atoi(matches[1])
		qubits = append(qubits, q)
	}
	return Barrier(qubits...), nil
}
