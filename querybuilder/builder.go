package querybuilder

import (
	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/queryctx"
)

// queryLike is satisfied by every statement builder in dialect/sql
// (Selector, InsertBuilder, UpdateBuilder, DeleteBuilder): each embeds
// *sql.Builder (giving Fragments/Dialect) and defines its own Query.
type queryLike interface {
	Query() (string, []any)
	Fragments() []sql.Fragment
	Dialect() string
}

// SqlQueryBuilder is the dialect-parametric façade described by §4.3: every
// public method takes ctx's dialect and limits plus operation-specific
// model/filter/args and returns one or more DbQuery values.
type SqlQueryBuilder struct {
	ctx *queryctx.Context
}

// New returns a SqlQueryBuilder rendering for ctx's dialect and limits.
func New(ctx *queryctx.Context) *SqlQueryBuilder {
	return &SqlQueryBuilder{ctx: ctx}
}

// convertQuery lowers any dialect/sql statement builder into a DbQuery's
// template form (§4.1's "build template" contract).
func (b *SqlQueryBuilder) convertQuery(q queryLike) DbQuery {
	_, params := q.Query()
	return b.withTrace(DbQuery{
		Kind:              KindTemplateSQL,
		Fragments:         q.Fragments(),
		PlaceholderFormat: sql.Placeholders(q.Dialect()),
		Params:            params,
	})
}

// withTrace appends the context's trace id as a trailing SQL comment
// (sqlcommenter-style) when one is set, so the statement can be correlated
// back to the compilation that produced it.
func (b *SqlQueryBuilder) withTrace(q DbQuery) DbQuery {
	trace := b.ctx.TraceParent()
	if trace == "" {
		return q
	}
	comment := " /* traceparent='" + trace + "' */"
	switch q.Kind {
	case KindRawSQL:
		q.SQL += comment
	default:
		q.Fragments = append(q.Fragments, sql.Fragment{Literal: comment})
	}
	return q
}
