package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_TopologicalSort_StagePipeline(t *testing.T) {
	g := New()
	for _, s := range []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7"} {
		g.AddNode(s)
	}
	g.AddEdge("S1", "S2")
	g.AddEdge("S2", "S3")
	g.AddEdge("S3", "S4")
	g.AddEdge("S3", "S6")
	g.AddEdge("S4", "S5")
	g.AddEdge("S6", "S5")
	g.AddEdge("S5", "S7")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, order, 7)

	pos := make(map[string]int, len(order))
	for i, s := range order {
		pos[s] = i
	}
	assert.Less(t, pos["S1"], pos["S2"])
	assert.Less(t, pos["S2"], pos["S3"])
	assert.Less(t, pos["S3"], pos["S4"])
	assert.Less(t, pos["S3"], pos["S6"])
	assert.Less(t, pos["S4"], pos["S5"])
	assert.Less(t, pos["S6"], pos["S5"])
	assert.Less(t, pos["S5"], pos["S7"])
}

func TestGraph_TopologicalSort_Cycle(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "A")

	_, err := g.TopologicalSort()
	assert.ErrorIs(t, err, ErrCycle)
	assert.True(t, g.HasCycles())
}

func TestGraph_TopologicalSort_Deterministic(t *testing.T) {
	g := New()
	g.AddNode("A")
	g.AddNode("B")
	g.AddNode("C")
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}

func TestGraph_PredecessorsSuccessors(t *testing.T) {
	g := New()
	g.AddEdge("S1", "S2")
	g.AddEdge("S3", "S2")

	assert.ElementsMatch(t, []string{"S1", "S3"}, g.Predecessors("S2"))
	assert.ElementsMatch(t, []string{"S2"}, g.Successors("S1"))
}
