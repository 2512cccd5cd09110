package circuit

import "slices"

// Node places one gate of the sequence on the circuit timeline.
// Dependencies are the indices of the gates that last touched any of its
// qubits; a gate can never run before them.
type Node struct {
	Index        int
	Gate         Gate
	Step         int
	Dependencies []int
}

// Schedule assigns every gate to the earliest step after the gates it
// depends on. Multi-qubit gates and barriers occupy every wire between their
// lowest and highest qubit so that a drawing never crosses two gates in one
// column. Barriers take a column of their own.
func (c *Circuit) Schedule() []Node {
	return c.place(true)
}

// Steps returns the number of columns Schedule needs.
func (c *Circuit) Steps() int {
	steps := 0
	for _, n := range c.place(true) {
		steps = max(steps, n.Step+1)
	}
	return steps
}

// Depth returns the circuit depth: the length of the longest chain of
// dependent gates. Barriers fence the qubits they span without adding depth.
func (c *Circuit) Depth() int {
	depth := 0
	for _, n := range c.place(false) {
		if !n.Gate.IsBarrier() {
			depth = max(depth, n.Step+1)
		}
	}
	return depth
}

func (c *Circuit) place(wide bool) []Node {
	frontier := make([]int, c.numQubits)
	lastGateOnQubit := make(map[int]int)
	nodes := make([]Node, 0, len(c.gates))

	for i, g := range c.gates {
		occupied := g.Qubits()
		if wide {
			occupied = spanRange(occupied)
		}

		step := 0
		for _, q := range occupied {
			step = max(step, frontier[q])
		}

		node := Node{Index: i, Gate: g.clone(), Step: step}
		for _, q := range g.Qubits() {
			if last, ok := lastGateOnQubit[q]; ok && !slices.Contains(node.Dependencies, last) {
				node.Dependencies = append(node.Dependencies, last)
			}
			lastGateOnQubit[q] = i
		}
		slices.Sort(node.Dependencies)
		nodes = append(nodes, node)

		next := step + 1
		if g.IsBarrier() && !wide {
			next = step
		}
		for _, q := range occupied {
			frontier[q] = next
		}
	}
	return nodes
}

// spanRange returns every index from the lowest to the highest of qs.
func spanRange(qs []int) []int {
	lo, hi := slices.Min(qs), slices.Max(qs)
	out := make([]int, 0, hi-lo+1)
	for q := lo; q <= hi; q++ {
		out = append(out, q)
	}
	return out
}
