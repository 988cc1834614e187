// Package expression is the compiler's output: a recursive tree of
// bindings, conditionals, and opaque query records threaded through a
// binding environment by a downstream interpreter. Building this tree is
// exprcompiler's job; this package only defines its shape and the few
// values (Env, ExpressionResult, EnvVarNotFoundError, InterpretationError)
// the tree's closures
// close over.
package expression

import (
	"fmt"

	"github.com/syssam/veloxql/querygraph"
)

// Expression is the tagged union described in the compiler's output
// contract. Kind discriminates which fields are populated; Go has no sum
// types so the variants share one struct the way querygraph.Node does.
type Expression struct {
	Kind Kind

	Seq []Expression // Sequence

	Bindings    []Binding    // Let
	Expressions []Expression // Let's body

	BindingName string // Get

	BindingNames []string // GetFirstNonEmpty

	Query querygraph.Query // Query

	Func func(Env) (Expression, error) // Func

	If     func() (bool, error) // If's predicate
	Then   []Expression         // If
	Else   []Expression         // If
	Result ExpressionResult     // Return
}

// Kind discriminates Expression's variants.
type Kind int

const (
	KindSequence Kind = iota
	KindLet
	KindGet
	KindGetFirstNonEmpty
	KindQuery
	KindFunc
	KindIf
	KindReturn
)

// Binding names one Let-introduced expression; Name is the source graph
// node's identity.
type Binding struct {
	Name string
	Expr Expression
}

// Sequence evaluates each expression in order and yields the last.
func Sequence(seq []Expression) Expression { return Expression{Kind: KindSequence, Seq: seq} }

// Let introduces bindings in declaration order, then evaluates body.
func Let(bindings []Binding, body []Expression) Expression {
	return Expression{Kind: KindLet, Bindings: bindings, Expressions: body}
}

// Get looks up a binding by name.
func Get(bindingName string) Expression {
	return Expression{Kind: KindGet, BindingName: bindingName}
}

// GetFirstNonEmpty returns the first bound value, among bindingNames, that
// is non-empty.
func GetFirstNonEmpty(bindingNames []string) Expression {
	return Expression{Kind: KindGetFirstNonEmpty, BindingNames: bindingNames}
}

// Query wraps an opaque semantic operation handed to the builder at
// interpretation time.
func Query(q querygraph.Query) Expression { return Expression{Kind: KindQuery, Query: q} }

// Func defers construction of the next expression to interpretation time,
// when the closure can resolve bindings from Env. Used for parent-dependent
// nodes (transform_node) and computation nodes.
func Func(f func(Env) (Expression, error)) Expression {
	return Expression{Kind: KindFunc, Func: f}
}

// If evaluates func at interpretation time and branches into then or else_.
func If(predicate func() (bool, error), then, elseExprs []Expression) Expression {
	return Expression{Kind: KindIf, If: predicate, Then: then, Else: elseExprs}
}

// Return short-circuits the enclosing scope, yielding result.
func Return(result ExpressionResult) Expression {
	return Expression{Kind: KindReturn, Result: result}
}

// Env resolves a graph node's binding name to the value produced while
// interpreting its expression.
type Env interface {
	Get(name string) (querygraph.Binding, bool)
}

// MapEnv is a plain map-backed Env.
type MapEnv map[string]querygraph.Binding

// Get implements Env.
func (e MapEnv) Get(name string) (querygraph.Binding, bool) {
	b, ok := e[name]
	return b, ok
}

// ExpressionResult is the value a Return expression yields. FixedResult is
// its only variant today: a selection list already known at compile time,
// as opposed to a result produced by actually running a query (out of
// scope for the compiler).
type ExpressionResult struct {
	Fixed FixedResult
}

// FixedResult wraps a selection list whose value is already known at
// compile time.
type FixedResult []any

// NewFixedResult builds an ExpressionResult from compile-time-known values.
func NewFixedResult(values []any) ExpressionResult {
	return ExpressionResult{Fixed: FixedResult(values)}
}

// IsEmpty reports whether the wrapped result carries no values, the
// predicate GetFirstNonEmpty tests against each candidate binding.
func (r ExpressionResult) IsEmpty() bool { return len(r.Fixed) == 0 }

// EnvVarNotFoundError reports that a Func closure resolved a binding name
// absent from Env. Non-recoverable for that node.
type EnvVarNotFoundError struct {
	Name string
}

func (e *EnvVarNotFoundError) Error() string {
	return fmt.Sprintf("expression: env var not found: %s", e.Name)
}

// InterpretationError wraps a failure inside a transformer closure,
// carrying the parent binding name for diagnosis.
type InterpretationError struct {
	Msg   string
	Cause error
}

func (e *InterpretationError) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *InterpretationError) Unwrap() error { return e.Cause }
