package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"qgrover/circuit"
	"qgrover/sim"
	"qgrover/synth"
)

// inputQubits returns the qubits an input pattern is loaded into: the
// controls when c has a ladder layout, or every qubit otherwise.
func inputQubits(c *circuit.Circuit, layout *synth.Layout) []int {
	if layout != nil {
		return layout.Controls()
	}
	return circuit.Identity(c.NumQubits())
}

// prepareInput prepends the state preparation to c. bits load a basis state
// into the input qubits, bits[0] into the first; uniform puts every input
// qubit into equal superposition instead. layout is nil for circuits that
// did not come from a builder.
func prepareInput(c *circuit.Circuit, layout *synth.Layout, bits []int, uniform bool) (*circuit.Circuit, error) {
	inputs := inputQubits(c, layout)
	if len(bits) > 0 && uniform {
		return nil, errors.New("an input pattern and uniform superposition are exclusive")
	}
	if len(bits) > len(inputs) {
		return nil, errors.Errorf("input has %d bits but the circuit has %d input qubits", len(bits), len(inputs))
	}

	prepared := c
	if len(bits) > 0 {
		mask, err := synth.FlipMask(c.NumQubits(), bits, true)
		if err != nil {
			return nil, errors.Wrap(err, "input mask")
		}
		if prepared, err = c.Compose(mask, nil, circuit.Before); err != nil {
			return nil, errors.Wrap(err, "prepare input")
		}
	}
	if uniform {
		hadamards, err := circuit.New(c.NumQubits())
		if err != nil {
			return nil, err
		}
		for _, q := range inputs {
			if err := hadamards.Apply(circuit.H(q)); err != nil {
				return nil, err
			}
		}
		if prepared, err = prepared.Compose(hadamards, nil, circuit.Before); err != nil {
			return nil, errors.Wrap(err, "prepare superposition")
		}
	}
	return prepared, nil
}

// decodeInputs reads the input qubits out of an outcome label as the integer
// they encode, input qubit 0 being the most significant bit.
func decodeInputs(label string, inputs []int) int {
	n := len(label)
	value := 0
	for _, q := range inputs {
		value <<= 1
		if label[n-1-q] == '1' {
			value |= 1
		}
	}
	return value
}

// writeHistogram prints the top outcomes as a table. Ladder circuits get the
// decoded input value and the target bit as extra columns.
func writeHistogram(w io.Writer, h sim.Histogram, layout *synth.Layout, top int) error {
	total := h.Total()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	header := []string{"Outcome", "Count", "Share"}
	if layout != nil {
		header = append(header, "Input", "Target")
	}
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, o := range h.Sorted() {
		if top > 0 && i == top {
			break
		}
		row := []string{
			o.Label,
			strconv.Itoa(o.Count),
			fmt.Sprintf("%.2f%%", 100*float64(o.Count)/float64(total)),
		}
		if layout != nil {
			row = append(row,
				strconv.Itoa(decodeInputs(o.Label, layout.Controls())),
				string(o.Label[0]))
		}
		table.Append(row)
	}
	table.SetFooter(append([]string{"total", strconv.Itoa(total), ""}, make([]string, len(header)-3)...))
	table.Render()
	_, err := buf.WriteTo(w)
	return errors.Wrap(err, "write histogram")
}

// writeStats prints qubit count, gate counts and depth as a table.
func writeStats(w io.Writer, c *circuit.Circuit) error {
	counts := c.Counts()
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"qubits", strconv.Itoa(c.NumQubits())})
	for _, t := range []circuit.GateType{circuit.GateX, circuit.GateH, circuit.GateCX, circuit.GateCCX, circuit.GateBarrier} {
		table.Append([]string{string(t), strconv.Itoa(counts[t])})
	}
	table.Append([]string{"gates", strconv.Itoa(c.Len())})
	table.Append([]string{"depth", strconv.Itoa(c.Depth())})
	table.Render()
	_, err := buf.WriteTo(w)
	return errors.Wrap(err, "write stats")
}
