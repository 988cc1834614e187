package querygraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/veloxql/model"
)

type fakeQuery struct {
	model *model.Model
}

func (q fakeQuery) Model() *model.Model { return q.model }

func TestRootNodesInInsertionOrder(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	b := g.AddQueryNode(fakeQuery{})
	g.AddEdge(a, b, Dependency{Kind: DepOther})

	assert.Equal(t, []NodeID{a}, g.RootNodes())
}

func TestDirectChildPairsPreservesInsertionOrder(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	b := g.AddQueryNode(fakeQuery{})
	c := g.AddQueryNode(fakeQuery{})
	g.AddEdge(a, b, Dependency{Kind: DepOther})
	g.AddEdge(a, c, Dependency{Kind: DepOther})

	pairs := g.DirectChildPairs(a)
	assert.Len(t, pairs, 2)
	assert.Equal(t, b, pairs[0].Child)
	assert.Equal(t, c, pairs[1].Child)
}

func TestPluckNodeConsumesContent(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})

	_, ok := g.NodeContent(a)
	assert.True(t, ok)

	g.PluckNode(a)

	_, ok = g.NodeContent(a)
	assert.False(t, ok)
}

func TestPluckNodeTwicePanics(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	g.PluckNode(a)

	assert.Panics(t, func() { g.PluckNode(a) })
}

func TestSubgraphContainsResultFindsDescendant(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	b := g.AddQueryNode(fakeQuery{})
	c := g.AddQueryNode(fakeQuery{})
	g.AddEdge(a, b, Dependency{Kind: DepOther})
	g.AddEdge(b, c, Dependency{Kind: DepOther})
	g.MarkResult(c)

	assert.True(t, g.SubgraphContainsResult(a))
	assert.True(t, g.SubgraphContainsResult(b))
	assert.True(t, g.SubgraphContainsResult(c))
}

func TestSubgraphContainsResultFalseWhenNoDescendantIsResult(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	b := g.AddQueryNode(fakeQuery{})
	g.AddEdge(a, b, Dependency{Kind: DepOther})

	assert.False(t, g.SubgraphContainsResult(a))
}

func TestResultNodesInInsertionOrder(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	b := g.AddQueryNode(fakeQuery{})
	g.MarkResult(b)
	g.MarkResult(a)

	assert.Equal(t, []NodeID{a, b}, g.ResultNodes())
}

func TestIncomingEdgesPreservesInsertionOrder(t *testing.T) {
	g := New()
	a := g.AddQueryNode(fakeQuery{})
	b := g.AddQueryNode(fakeQuery{})
	c := g.AddQueryNode(fakeQuery{})
	e1 := g.AddEdge(a, c, Dependency{Kind: DepOther})
	e2 := g.AddEdge(b, c, Dependency{Kind: DepOther})

	assert.Equal(t, []EdgeID{e1, e2}, g.IncomingEdges(c))
}

func TestDependencyKindHasTransformer(t *testing.T) {
	assert.True(t, DepProjectedData.HasTransformer())
	assert.True(t, DepProjectedDataSink.HasTransformer())
	assert.True(t, DepDataRowCount.HasTransformer())
	assert.False(t, DepThen.HasTransformer())
	assert.False(t, DepElse.HasTransformer())
	assert.False(t, DepOther.HasTransformer())
}
