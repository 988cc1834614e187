package veloxql

import (
	"fmt"

	"github.com/syssam/veloxql/exprcompiler"
	"github.com/syssam/veloxql/expression"
	"github.com/syssam/veloxql/querygraph"
)

// CompileError is the taxonomy described in §7: a compile aborts the
// operation outright, never returning a partial expression tree.
type CompileError struct {
	Kind  CompileErrorKind
	Cause error
}

// CompileErrorKind discriminates CompileError's variants.
type CompileErrorKind int

const (
	// KindUnsupportedRequest fires when Compile is given anything other
	// than exactly one query (none, or more than one); the core compiles
	// exactly one graph per call.
	KindUnsupportedRequest CompileErrorKind = iota
	// KindGraphBuildError wraps a failure building the query graph, a
	// step owned by the caller, not the compiler.
	KindGraphBuildError
	// KindTranslateError wraps a failure from exprcompiler.Translate.
	KindTranslateError
)

func (e *CompileError) Error() string {
	switch e.Kind {
	case KindUnsupportedRequest:
		return "velox: unsupported request: compile accepts exactly one query graph"
	case KindGraphBuildError:
		return fmt.Sprintf("velox: graph build error: %v", e.Cause)
	case KindTranslateError:
		return fmt.Sprintf("velox: translate error: %v", e.Cause)
	default:
		return fmt.Sprintf("velox: compile error: %v", e.Cause)
	}
}

func (e *CompileError) Unwrap() error { return e.Cause }

// GraphBuilder is the external collaborator §4.5 hands the declarative
// operation to: whatever turns a parsed request into a querygraph.Graph.
// It is supplied by the caller, not the core, since graph construction
// depends on the schema/request representation outside this module's
// scope.
type GraphBuilder interface {
	BuildGraph() (*querygraph.Graph, error)
}

// Compile implements §4.5: build a query graph from the operation, then
// run the expression compiler over it. It does not touch a Context or
// dialect directly — those are consumed downstream by querybuilder when
// the resulting Expression tree's Query nodes are interpreted — Compile's
// job ends at producing the Expression.
//
// operations is variadic only to give UnsupportedRequest somewhere to
// fire: the compiler accepts exactly one declarative operation per call,
// a root node within that operation's graph may still fan out into many
// Query nodes.
func Compile(operations ...GraphBuilder) (expression.Expression, error) {
	if len(operations) != 1 {
		return expression.Expression{}, &CompileError{Kind: KindUnsupportedRequest}
	}

	graph, err := operations[0].BuildGraph()
	if err != nil {
		return expression.Expression{}, &CompileError{Kind: KindGraphBuildError, Cause: NewQueryError("graph", "build", err)}
	}

	expr, err := exprcompiler.Translate(graph)
	if err != nil {
		return expression.Expression{}, &CompileError{Kind: KindTranslateError, Cause: NewQueryError("graph", "translate", err)}
	}
	return expr, nil
}
