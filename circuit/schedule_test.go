package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleParallelGates(t *testing.T) {
	c := mustCircuit(t, 4, H(0), H(1), CX(0, 1), X(2))
	nodes := c.Schedule()

	steps := make([]int, len(nodes))
	for i, n := range nodes {
		steps[i] = n.Step
	}
	assert.Equal(t, []int{0, 0, 1, 0}, steps)
	assert.Equal(t, []int{0, 1}, nodes[2].Dependencies)
	assert.Empty(t, nodes[3].Dependencies)
}

func TestScheduleWideGatesBlockIntermediateWires(t *testing.T) {
	// CX(0, 2) is drawn across q[1], so X(1) cannot share its column.
	c := mustCircuit(t, 3, CX(0, 2), X(1))
	nodes := c.Schedule()
	assert.Equal(t, 0, nodes[0].Step)
	assert.Equal(t, 1, nodes[1].Step)

	// The dependency graph does not care about the drawing.
	assert.Equal(t, 1, c.Depth())
	assert.Equal(t, 2, c.Steps())
}

func TestBarrierFencesWithoutDepth(t *testing.T) {
	c := mustCircuit(t, 2, X(0), Barrier(0, 1), X(1))

	nodes := c.Schedule()
	assert.Equal(t, []int{0, 1, 2}, []int{nodes[0].Step, nodes[1].Step, nodes[2].Step})

	// Without the barrier X(1) would run alongside X(0).
	assert.Equal(t, 2, c.Depth())
	free := mustCircuit(t, 2, X(0), X(1))
	assert.Equal(t, 1, free.Depth())
}

func TestEmptyCircuitSchedule(t *testing.T) {
	c := mustCircuit(t, 2)
	assert.Empty(t, c.Schedule())
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, 0, c.Steps())
}
