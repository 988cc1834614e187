package querygraph

import "github.com/syssam/veloxql/model"

// DependencyKind discriminates the QueryGraphDependency tagged union
// carried on an edge.
type DependencyKind int

const (
	DepOther DependencyKind = iota
	DepThen
	DepElse
	DepProjectedData
	DepProjectedDataSink
	DepDataRowCount
)

// HasTransformer reports whether this dependency kind is one transform_node
// plucks and folds into a parent-dependent Func closure (§4.4.5): the two
// kinds that carry a selection projection of the parent's result, plus the
// row-count kind.
func (k DependencyKind) HasTransformer() bool {
	switch k {
	case DepProjectedData, DepProjectedDataSink, DepDataRowCount:
		return true
	default:
		return false
	}
}

// Binding is the interpretation-time value bound to a node id in Env: the
// parent's materialized result, narrowed to the rows a child's dependency
// needs. Implemented by whatever the interpreter binds Query nodes to;
// querygraph only needs the projection surface.
type Binding interface {
	AsSelectionResults(sel model.FieldSelection) ([]model.SelectionResult, error)
}

// Expectation validates a parent binding before it is projected and
// consumed, surfacing an interpretation-time error instead of a mismatched
// arity silently propagating.
type Expectation func(b Binding) error

// Transformer rewrites a child node using the parent's projected result
// (ProjectedDataDependency's `transformer`). Pure: given the same node and
// rows it must produce the same result.
type Transformer func(node Node, parentSelections []model.SelectionResult) (Node, error)

// RowSinkKind discriminates ProjectedDataSinkDependency's consumer
// variants (§4.4.5's arity table).
type RowSinkKind int

const (
	SinkSingle RowSinkKind = iota
	SinkAll
	SinkAtMostOne
	SinkExactlyOne
	SinkExactlyOneFilter
	SinkExactlyOneWriteArgs
	SinkDiscard
)

// RowSink is ProjectedDataSinkDependency's consumer: it writes the parent's
// projected rows into a field of the child node. The Set* closures are the
// Go stand-in for the Rust source's `field.node_input_field(&mut node)`
// lens accessors, supplied by whatever constructs the edge since only it
// knows which field of the concrete Query the dependency targets.
type RowSink struct {
	Kind RowSinkKind

	// SetRows backs Single, All, AtMostOne, and ExactlyOne. The arity
	// handling (AtMostOne keeping only the first row, Single requiring at
	// least one, ExactlyOne requiring exactly one) is applied by the caller
	// (transform_node) before invoking this closure; SetRows only assigns.
	SetRows func(node *Node, rows []model.SelectionResult)

	// SetFilter backs ExactlyOneFilter: the single projected row is
	// converted with SelectionResult.ToFilter and assigned.
	SetFilter func(node *Node, filter model.RecordFilter)

	// WriteArgsSelection and SetWriteArgs back ExactlyOneWriteArgs: every
	// write-args value reachable from the node is assimilated with the
	// single projected row under WriteArgsSelection, then has its
	// @updatedAt-style fields refreshed.
	WriteArgsSelection model.FieldSelection
	SetWriteArgs       func(node *Node, row model.SelectionResult, sel model.FieldSelection) error
}

// RowCountSink discriminates DataDependency's consumer. Only Discard
// exists today (§3.1).
type RowCountSink int

const (
	RowCountDiscard RowCountSink = iota
)

// Dependency is the payload carried on one edge (QueryGraphDependency).
// Only the fields relevant to Kind are populated.
type Dependency struct {
	Kind DependencyKind

	// DepProjectedData / DepProjectedDataSink
	Selection model.FieldSelection

	// DepProjectedData
	Transformer Transformer

	// DepProjectedDataSink
	Sink RowSink

	// DepDataRowCount
	RowCount RowCountSink

	// Present on any transformer-carrying kind.
	Expectation Expectation
}
