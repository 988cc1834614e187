// Package exprcompiler walks a mutable querygraph.Graph and emits a single
// expression.Expression, capturing the closures that will run
// parent-to-child data transformers during interpretation. This is the
// graph-to-tree half of the core; the SQL-rendering half lives in
// querybuilder.
package exprcompiler

import (
	"fmt"

	"github.com/syssam/veloxql/expression"
	"github.com/syssam/veloxql/model"
	"github.com/syssam/veloxql/querygraph"
)

// Translate visits every root node of graph and produces a top-level
// Sequence. It consumes graph destructively: each visited node and
// traversed transformer-carrying edge is plucked, so graph must not be
// reused afterward.
func Translate(graph *querygraph.Graph) (expression.Expression, error) {
	roots := graph.RootNodes()
	seq := make([]expression.Expression, 0, len(roots))
	for _, root := range roots {
		expr, err := buildExpression(graph, root, nil)
		if err != nil {
			return expression.Expression{}, err
		}
		seq = append(seq, expr)
	}
	return expression.Sequence(seq), nil
}

func buildExpression(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	content, ok := g.NodeContent(node)
	if !ok {
		return expression.Expression{}, &TranslateError{Msg: fmt.Sprintf("node content %s was empty", node)}
	}
	switch content.Kind {
	case querygraph.KindQuery:
		return buildQueryExpression(g, node, parentEdges)
	case querygraph.KindFlowIf, querygraph.KindFlowReturn:
		return buildFlowExpression(g, node, parentEdges)
	case querygraph.KindComputation:
		return buildComputationExpression(g, node, parentEdges)
	case querygraph.KindEmpty:
		return buildEmptyExpression(g, node, parentEdges)
	default:
		return expression.Expression{}, &TranslateError{Msg: "unreachable node kind"}
	}
}

// buildQueryExpression implements §4.4.1.
func buildQueryExpression(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	g.MarkVisited(node)

	directChildren := g.DirectChildPairs(node)
	childExpressions, err := processChildren(g, directChildren)
	if err != nil {
		return expression.Expression{}, err
	}

	isResult := g.IsResultNode(node)
	nodeID := string(node)
	content := g.PluckNode(node)

	intoExpr := func(n querygraph.Node) (expression.Expression, error) {
		if n.Kind != querygraph.KindQuery || n.Query == nil {
			return expression.Expression{}, &TranslateError{Msg: "expected query node content"}
		}
		return expression.Query(n.Query), nil
	}

	expr, err := transformNode(g, parentEdges, content, intoExpr)
	if err != nil {
		return expression.Expression{}, err
	}

	if len(childExpressions) == 0 {
		return expr, nil
	}

	if isResult {
		childExpressions = append(childExpressions, expression.Get(nodeID))
	}

	return expression.Let([]expression.Binding{{Name: nodeID, Expr: expr}}, childExpressions), nil
}

// processChildren implements the result/non-result split described in
// §4.4.1 step 2: non-result children keep the child-pair iteration order,
// result subgraphs are folded (§4.4.6) and appended last.
func processChildren(g *querygraph.Graph, childPairs []querygraph.ChildPair) ([]expression.Expression, error) {
	isResultSubgraph := make([]bool, len(childPairs))
	for i, pair := range childPairs {
		isResultSubgraph[i] = g.SubgraphContainsResult(pair.Child)
	}

	var remaining []querygraph.ChildPair
	for i, pair := range childPairs {
		if !isResultSubgraph[i] {
			remaining = append(remaining, pair)
		}
	}

	var resultSubgraphs []querygraph.ChildPair
	for i := len(childPairs) - 1; i >= 0; i-- {
		if isResultSubgraph[i] {
			resultSubgraphs = append(resultSubgraphs, childPairs[i])
		}
	}

	expressions := make([]expression.Expression, 0, len(remaining)+1)
	for _, pair := range remaining {
		edges := g.IncomingEdges(pair.Child)
		e, err := buildExpression(g, pair.Child, edges)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, e)
	}

	if len(resultSubgraphs) > 0 {
		folded, err := foldResultScopes(g, resultSubgraphs)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, folded)
	}

	return expressions, nil
}

// buildEmptyExpression implements the Empty dispatch in §4.4.
func buildEmptyExpression(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	g.MarkVisited(node)

	childPairs := g.DirectChildPairs(node)
	exprs := make([]expression.Expression, 0, len(childPairs))
	for _, pair := range childPairs {
		edges := g.IncomingEdges(pair.Child)
		e, err := buildExpression(g, pair.Child, edges)
		if err != nil {
			return expression.Expression{}, err
		}
		exprs = append(exprs, e)
	}

	intoExpr := func(_ querygraph.Node) (expression.Expression, error) {
		return expression.Sequence(exprs), nil
	}

	return transformNode(g, parentEdges, querygraph.Node{Kind: querygraph.KindEmpty}, intoExpr)
}

// buildComputationExpression implements §4.4.4. The set difference runs
// inside the Func closure, at interpretation time, not here.
func buildComputationExpression(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	g.MarkVisited(node)

	nodeID := string(node)
	childPairs := g.DirectChildPairs(node)
	exprs := make([]expression.Expression, 0, len(childPairs))
	for _, pair := range childPairs {
		edges := g.IncomingEdges(pair.Child)
		e, err := buildExpression(g, pair.Child, edges)
		if err != nil {
			return expression.Expression{}, err
		}
		exprs = append(exprs, e)
	}

	content := g.PluckNode(node)

	intoExpr := func(n querygraph.Node) (expression.Expression, error) {
		direction := n.DiffDirection
		left := n.DiffLeft
		right := n.DiffRight
		return expression.Func(func(_ expression.Env) (expression.Expression, error) {
			diff := setDifference(direction, left, right)
			return expression.Return(expression.NewFixedResult(diff)), nil
		}), nil
	}

	expr, err := transformNode(g, parentEdges, content, intoExpr)
	if err != nil {
		return expression.Expression{}, err
	}

	if len(exprs) == 0 {
		return expr, nil
	}

	return expression.Let([]expression.Binding{{Name: nodeID, Expr: expr}}, exprs), nil
}

func setDifference(direction querygraph.DiffDirection, left, right []any) []any {
	leftSet := make(map[any]struct{}, len(left))
	for _, v := range left {
		leftSet[v] = struct{}{}
	}
	rightSet := make(map[any]struct{}, len(right))
	for _, v := range right {
		rightSet[v] = struct{}{}
	}

	var diff []any
	if direction == querygraph.DiffLeftToRight {
		for _, v := range left {
			if _, ok := rightSet[v]; !ok {
				diff = append(diff, v)
			}
		}
	} else {
		for _, v := range right {
			if _, ok := leftSet[v]; !ok {
				diff = append(diff, v)
			}
		}
	}
	return diff
}

// buildFlowExpression dispatches Flow(If) vs Flow(Return), §4.4.2/§4.4.3.
func buildFlowExpression(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	g.MarkVisited(node)

	content, ok := g.NodeContent(node)
	if !ok {
		return expression.Expression{}, &TranslateError{Msg: fmt.Sprintf("node content %s was empty", node)}
	}

	switch content.Kind {
	case querygraph.KindFlowIf:
		return translateIfNode(g, node, parentEdges)
	case querygraph.KindFlowReturn:
		return translateReturnNode(g, node, parentEdges)
	default:
		return expression.Expression{}, &TranslateError{Msg: "unreachable flow node kind"}
	}
}

func translateIfNode(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	childPairs := g.DirectChildPairs(node)

	var thenPair, elsePair *querygraph.ChildPair
	var other []querygraph.ChildPair

	for _, pair := range childPairs {
		dep, _ := g.EdgeContent(pair.Edge)
		switch dep.Kind {
		case querygraph.DepThen:
			p := pair
			thenPair = &p
		case querygraph.DepElse:
			p := pair
			elsePair = &p
		default:
			other = append(other, pair)
		}
	}

	if thenPair == nil {
		return expression.Expression{}, &TranslateError{Msg: "expected if-node to always have a then edge to another node"}
	}

	thenExpr, err := buildExpression(g, thenPair.Child, g.IncomingEdges(thenPair.Child))
	if err != nil {
		return expression.Expression{}, err
	}

	var elseExprs []expression.Expression
	if elsePair != nil {
		e, err := buildExpression(g, elsePair.Child, g.IncomingEdges(elsePair.Child))
		if err != nil {
			return expression.Expression{}, err
		}
		elseExprs = []expression.Expression{e}
	}

	childExpressions, err := processChildren(g, other)
	if err != nil {
		return expression.Expression{}, err
	}

	nodeID := string(node)
	content := g.PluckNode(node)

	intoExpr := func(n querygraph.Node) (expression.Expression, error) {
		if n.Kind != querygraph.KindFlowIf {
			return expression.Expression{}, &TranslateError{Msg: "expected if-flow node content"}
		}
		rule := n.IfRule
		data := n.IfData

		ifExpr := expression.If(func() (bool, error) {
			return rule.MatchesResult(data)
		}, []expression.Expression{thenExpr}, elseExprs)

		if len(childExpressions) == 0 {
			return ifExpr, nil
		}
		return expression.Let([]expression.Binding{{Name: nodeID, Expr: ifExpr}}, childExpressions), nil
	}

	return transformNode(g, parentEdges, content, intoExpr)
}

func translateReturnNode(g *querygraph.Graph, node querygraph.NodeID, parentEdges []querygraph.EdgeID) (expression.Expression, error) {
	directChildren := g.DirectChildPairs(node)
	childExpressions, err := processChildren(g, directChildren)
	if err != nil {
		return expression.Expression{}, err
	}

	nodeID := string(node)
	content := g.PluckNode(node)

	intoExpr := func(n querygraph.Node) (expression.Expression, error) {
		if n.Kind != querygraph.KindFlowReturn {
			return expression.Expression{}, &TranslateError{Msg: "expected return-flow node content"}
		}
		return expression.Return(expression.NewFixedResult(boxSelectionResults(n.ReturnResult))), nil
	}

	expr, err := transformNode(g, parentEdges, content, intoExpr)
	if err != nil {
		return expression.Expression{}, err
	}

	if len(childExpressions) == 0 {
		return expr, nil
	}

	return expression.Let([]expression.Binding{{Name: nodeID, Expr: expr}}, childExpressions), nil
}

func boxSelectionResults(rows []model.SelectionResult) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// foldResultScopes implements §4.4.6.
func foldResultScopes(g *querygraph.Graph, resultSubgraphs []querygraph.ChildPair) (expression.Expression, error) {
	bindings := make([]expression.Binding, 0, len(resultSubgraphs))
	for _, pair := range resultSubgraphs {
		name := string(pair.Child)
		expr, err := buildExpression(g, pair.Child, g.IncomingEdges(pair.Child))
		if err != nil {
			return expression.Expression{}, err
		}
		bindings = append(bindings, expression.Binding{Name: name, Expr: expr})
	}

	resultNodes := g.ResultNodes()

	if len(resultNodes) == 1 {
		lets := make([]expression.Expression, len(bindings))
		for i, b := range bindings {
			lets[i] = expression.Let([]expression.Binding{b}, nil)
		}
		if len(lets) == 0 {
			return expression.Sequence(nil), nil
		}
		last := len(lets) - 1
		lastName := lets[last].Bindings[0].Name
		lets[last].Expressions = append(lets[last].Expressions, expression.Get(lastName))

		acc := lets[0]
		for _, next := range lets[1:] {
			acc.Expressions = append(acc.Expressions, next)
		}
		return acc, nil
	}

	resultBindingNames := make([]string, len(bindings))
	for i, b := range bindings {
		resultBindingNames[i] = b.Name
	}

	return expression.Let(bindings, []expression.Expression{expression.GetFirstNonEmpty(resultBindingNames)}), nil
}

// parentTransformer pairs a transformer-carrying edge's dependency with
// the binding name of the node it came from.
type parentTransformer struct {
	parentBindingName string
	dependency        querygraph.Dependency
}

// transformNode implements §4.4.5, the heart of the compiler.
func transformNode(
	g *querygraph.Graph,
	parentEdges []querygraph.EdgeID,
	node querygraph.Node,
	intoExpr func(querygraph.Node) (expression.Expression, error),
) (expression.Expression, error) {
	if len(parentEdges) == 0 {
		return intoExpr(node)
	}

	parentIDDeps := collectParentTransformers(g, parentEdges)
	if len(parentIDDeps) == 0 {
		return intoExpr(node)
	}

	return expression.Func(func(env expression.Env) (expression.Expression, error) {
		current := node
		for _, dep := range parentIDDeps {
			binding, ok := env.Get(dep.parentBindingName)
			if !ok {
				return expression.Expression{}, &expression.EnvVarNotFoundError{
					Name: fmt.Sprintf("expected parent binding '%s' to be present", dep.parentBindingName),
				}
			}
			next, err := applyDependency(current, binding, dep.dependency)
			if err != nil {
				return expression.Expression{}, &expression.InterpretationError{
					Msg:   fmt.Sprintf("error for binding '%s'", dep.parentBindingName),
					Cause: err,
				}
			}
			current = next
		}
		return intoExpr(current)
	}), nil
}

func collectParentTransformers(g *querygraph.Graph, parentEdges []querygraph.EdgeID) []parentTransformer {
	out := make([]parentTransformer, 0, len(parentEdges))
	for _, e := range parentEdges {
		dep := g.PluckEdge(e)
		if !dep.Kind.HasTransformer() {
			continue
		}
		out = append(out, parentTransformer{
			parentBindingName: string(g.EdgeSource(e)),
			dependency:        dep,
		})
	}
	return out
}

func applyDependency(node querygraph.Node, binding querygraph.Binding, dep querygraph.Dependency) (querygraph.Node, error) {
	if dep.Expectation != nil {
		if err := dep.Expectation(binding); err != nil {
			return node, err
		}
	}

	switch dep.Kind {
	case querygraph.DepProjectedData:
		rows, err := binding.AsSelectionResults(dep.Selection)
		if err != nil {
			return node, err
		}
		return dep.Transformer(node, rows)

	case querygraph.DepProjectedDataSink:
		rows, err := binding.AsSelectionResults(dep.Selection)
		if err != nil {
			return node, err
		}
		return applySink(node, rows, dep.Sink)

	case querygraph.DepDataRowCount:
		switch dep.RowCount {
		case querygraph.RowCountDiscard:
		}
		return node, nil

	default:
		return node, &TranslateError{Msg: "unreachable dependency kind in transform_node"}
	}
}

func applySink(node querygraph.Node, rows []model.SelectionResult, sink querygraph.RowSink) (querygraph.Node, error) {
	switch sink.Kind {
	case querygraph.SinkSingle:
		if len(rows) == 0 {
			return node, fmt.Errorf("exprcompiler: expected at least one parent row for Single sink")
		}
		sink.SetRows(&node, []model.SelectionResult{rows[len(rows)-1]})

	case querygraph.SinkAll:
		sink.SetRows(&node, rows)

	case querygraph.SinkAtMostOne:
		if len(rows) > 1 {
			rows = rows[:1]
		}
		sink.SetRows(&node, rows)

	case querygraph.SinkExactlyOne:
		if len(rows) != 1 {
			return node, fmt.Errorf("exprcompiler: expected exactly one parent row for ExactlyOne sink, got %d", len(rows))
		}
		sink.SetRows(&node, []model.SelectionResult{rows[0]})

	case querygraph.SinkExactlyOneFilter:
		if len(rows) != 1 {
			return node, fmt.Errorf("exprcompiler: expected exactly one parent row for ExactlyOneFilter sink, got %d", len(rows))
		}
		sink.SetFilter(&node, rows[0].ToFilter())

	case querygraph.SinkExactlyOneWriteArgs:
		if len(rows) != 1 {
			return node, fmt.Errorf("exprcompiler: expected exactly one parent row for ExactlyOneWriteArgs sink, got %d", len(rows))
		}
		if err := sink.SetWriteArgs(&node, rows[0], sink.WriteArgsSelection); err != nil {
			return node, err
		}

	case querygraph.SinkDiscard:
	}

	return node, nil
}
