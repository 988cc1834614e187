// Package querygraph is the compiler's input: a DAG of pending query
// operations and control-flow nodes, built externally (by whatever turns a
// declarative operation into a plan) and consumed destructively by
// exprcompiler. Nodes and edges are plucked (their payload taken) exactly
// once as the tree is walked; the topology itself is never mutated, so
// derived facts like SubgraphContainsResult stay valid for the whole
// translation even after earlier nodes have been plucked.
package querygraph

import "github.com/syssam/veloxql/model"

// NodeID is a node's stable, cheap identity, reused downstream as its
// let-binding name.
type NodeID string

// Kind discriminates the Node tagged union.
type Kind int

const (
	KindQuery Kind = iota
	KindFlowIf
	KindFlowReturn
	KindComputation
	KindEmpty
)

// DiffDirection selects which side of a Computation node's set difference
// is kept.
type DiffDirection int

const (
	DiffLeftToRight DiffDirection = iota
	DiffRightToLeft
)

// Query is the opaque semantic operation a Query node carries. The
// concrete implementation (a read, write, aggregate, etc.) lives in
// querybuilder; querygraph only needs enough of the shape to let the
// compiler attach a binding name and hand it to the builder untouched.
type Query interface {
	Model() *model.Model
}

// IfRule is the predicate a Flow(If) node evaluates against its fixed data
// payload at interpretation time.
type IfRule interface {
	MatchesResult(data []model.SelectionResult) (bool, error)
}

// Node is one tagged-union element of the query graph. Only the fields
// relevant to Kind are populated; it mirrors the Rust source's enum
// variants as a flat struct because Go has no sum types.
type Node struct {
	Kind Kind

	// KindQuery
	Query Query

	// KindFlowIf
	IfRule IfRule
	IfData []model.SelectionResult

	// KindFlowReturn
	ReturnResult []model.SelectionResult

	// KindComputation
	DiffDirection DiffDirection
	DiffLeft      []any
	DiffRight     []any
}
