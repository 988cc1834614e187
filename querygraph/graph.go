package querygraph

import (
	"fmt"

	"github.com/syssam/veloxql/model"
)

// EdgeID is an edge's stable identity within one Graph.
type EdgeID uint64

type nodeSlot struct {
	content  Node
	plucked  bool
	isResult bool
}

type edgeSlot struct {
	source  NodeID
	target  NodeID
	content Dependency
	plucked bool
}

// ChildPair is one (edge, child) tuple as returned by DirectChildPairs, in
// the order the edges were added.
type ChildPair struct {
	Edge  EdgeID
	Child NodeID
}

// Graph is the query graph: a DAG of Node payloads connected by Dependency
// edges. Construction (Add*) and the destructive traversal API
// (Pluck*/MarkVisited) are both exposed here because, unlike the upstream
// source, this package also has to stand in for the external graph-builder
// collaborator that spec.md treats as out of scope — tests build graphs
// directly with the Add* methods.
type Graph struct {
	nodes   map[NodeID]*nodeSlot
	order   []NodeID
	edges   map[EdgeID]*edgeSlot
	outEdge map[NodeID][]EdgeID
	inEdge  map[NodeID][]EdgeID

	visited map[NodeID]bool

	containsResult map[NodeID]bool

	nextNode uint64
	nextEdge uint64
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes:          make(map[NodeID]*nodeSlot),
		edges:          make(map[EdgeID]*edgeSlot),
		outEdge:        make(map[NodeID][]EdgeID),
		inEdge:         make(map[NodeID][]EdgeID),
		visited:        make(map[NodeID]bool),
		containsResult: make(map[NodeID]bool),
	}
}

func (g *Graph) addNode(n Node) NodeID {
	id := NodeID(fmt.Sprintf("n%d", g.nextNode))
	g.nextNode++
	g.nodes[id] = &nodeSlot{content: n}
	g.order = append(g.order, id)
	return id
}

// AddQueryNode adds a Query node.
func (g *Graph) AddQueryNode(q Query) NodeID {
	return g.addNode(Node{Kind: KindQuery, Query: q})
}

// AddIfNode adds a Flow(If) node.
func (g *Graph) AddIfNode(rule IfRule, data []model.SelectionResult) NodeID {
	return g.addNode(Node{Kind: KindFlowIf, IfRule: rule, IfData: data})
}

// AddReturnNode adds a Flow(Return) node.
func (g *Graph) AddReturnNode(result []model.SelectionResult) NodeID {
	return g.addNode(Node{Kind: KindFlowReturn, ReturnResult: result})
}

// AddComputationNode adds a Computation(Diff*) node.
func (g *Graph) AddComputationNode(dir DiffDirection, left, right []any) NodeID {
	return g.addNode(Node{Kind: KindComputation, DiffDirection: dir, DiffLeft: left, DiffRight: right})
}

// AddEmptyNode adds a structural Empty node.
func (g *Graph) AddEmptyNode() NodeID {
	return g.addNode(Node{Kind: KindEmpty})
}

// MarkResult marks id as a result node: its value must surface to the
// enclosing scope's result.
func (g *Graph) MarkResult(id NodeID) {
	g.nodes[id].isResult = true
	g.invalidateResultCache()
}

func (g *Graph) invalidateResultCache() {
	g.containsResult = make(map[NodeID]bool)
}

// AddEdge adds a dependency edge from -> to, in insertion order relative to
// from's other outgoing edges.
func (g *Graph) AddEdge(from, to NodeID, dep Dependency) EdgeID {
	id := EdgeID(g.nextEdge)
	g.nextEdge++
	g.edges[id] = &edgeSlot{source: from, target: to, content: dep}
	g.outEdge[from] = append(g.outEdge[from], id)
	g.inEdge[to] = append(g.inEdge[to], id)
	g.invalidateResultCache()
	return id
}

// AddThenEdge is a convenience for the mandatory Then branch out of a
// Flow(If) node.
func (g *Graph) AddThenEdge(from, to NodeID) EdgeID {
	return g.AddEdge(from, to, Dependency{Kind: DepThen})
}

// AddElseEdge is a convenience for the optional Else branch out of a
// Flow(If) node.
func (g *Graph) AddElseEdge(from, to NodeID) EdgeID {
	return g.AddEdge(from, to, Dependency{Kind: DepElse})
}

// RootNodes returns the nodes with no incoming edges, in the order they
// were added to the graph.
func (g *Graph) RootNodes() []NodeID {
	var roots []NodeID
	for _, id := range g.order {
		if len(g.inEdge[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// NodeContent returns id's current payload without consuming it. Returns
// false if the node was already plucked.
func (g *Graph) NodeContent(id NodeID) (Node, bool) {
	slot, ok := g.nodes[id]
	if !ok || slot.plucked {
		return Node{}, false
	}
	return slot.content, true
}

// MarkVisited records that id has been processed, matching the upstream
// source's explicit visited-tracking independent of plucking.
func (g *Graph) MarkVisited(id NodeID) {
	g.visited[id] = true
}

// Visited reports whether MarkVisited has been called for id.
func (g *Graph) Visited(id NodeID) bool {
	return g.visited[id]
}

// DirectChildPairs returns id's outgoing (edge, child) pairs in the order
// the edges were added.
func (g *Graph) DirectChildPairs(id NodeID) []ChildPair {
	edges := g.outEdge[id]
	pairs := make([]ChildPair, len(edges))
	for i, e := range edges {
		pairs[i] = ChildPair{Edge: e, Child: g.edges[e].target}
	}
	return pairs
}

// IsResultNode reports whether id was marked as a result node.
func (g *Graph) IsResultNode(id NodeID) bool {
	slot, ok := g.nodes[id]
	return ok && slot.isResult
}

// PluckNode takes id's payload, leaving the slot consumed. Panics if id has
// no content or was already plucked, mirroring the upstream source's
// `unwrap_or_else(|| panic!(...))`: a second pluck of the same node is a
// compiler bug, not a recoverable condition.
func (g *Graph) PluckNode(id NodeID) Node {
	slot, ok := g.nodes[id]
	if !ok || slot.plucked {
		panic(fmt.Sprintf("querygraph: node content %s was empty", id))
	}
	slot.plucked = true
	return slot.content
}

// IncomingEdges returns id's incoming edges in the order they were added.
func (g *Graph) IncomingEdges(id NodeID) []EdgeID {
	return append([]EdgeID(nil), g.inEdge[id]...)
}

// EdgeContent returns e's current dependency without consuming it.
func (g *Graph) EdgeContent(e EdgeID) (Dependency, bool) {
	slot, ok := g.edges[e]
	if !ok || slot.plucked {
		return Dependency{}, false
	}
	return slot.content, true
}

// EdgeSource returns the node an edge originates from.
func (g *Graph) EdgeSource(e EdgeID) NodeID {
	return g.edges[e].source
}

// PluckEdge takes e's dependency payload, leaving the slot consumed.
func (g *Graph) PluckEdge(e EdgeID) Dependency {
	slot := g.edges[e]
	slot.plucked = true
	return slot.content
}

// SubgraphContainsResult reports whether id, or any node reachable from it,
// is a result node. Memoized bottom-up per §9's explicit O(N^2) warning:
// the naive per-call re-walk is quadratic over a chain of Query nodes, so
// results are cached the first time any node's reachability is asked for.
// Topology never changes after construction (only node/edge payloads are
// plucked), so the cache stays valid for the rest of the translation.
func (g *Graph) SubgraphContainsResult(id NodeID) bool {
	if v, ok := g.containsResult[id]; ok {
		return v
	}
	visiting := make(map[NodeID]bool)
	var walk func(NodeID) bool
	walk = func(n NodeID) bool {
		if v, ok := g.containsResult[n]; ok {
			return v
		}
		if visiting[n] {
			return false
		}
		visiting[n] = true
		result := g.IsResultNode(n)
		if !result {
			for _, e := range g.outEdge[n] {
				if walk(g.edges[e].target) {
					result = true
					break
				}
			}
		}
		g.containsResult[n] = result
		return result
	}
	return walk(id)
}

// ResultNodes returns every node marked as a result node, in the order
// they were added to the graph.
func (g *Graph) ResultNodes() []NodeID {
	var out []NodeID
	for _, id := range g.order {
		if g.nodes[id].isResult {
			out = append(out, id)
		}
	}
	return out
}
