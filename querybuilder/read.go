package querybuilder

import (
	"fmt"

	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/model"
)

// BuildGetRecords implements the query-strategy read path (§4.3.1): select
// from the model's table with the requested selection plus any virtual
// columns, applying filter, ordering, and pagination. The join strategy
// (RelationLoadStrategy's alternative, used when relation_joins is enabled)
// has no caller in this builder — see DESIGN.md.
func (b *SqlQueryBuilder) BuildGetRecords(m *model.Model, sel model.FieldSelection, args model.QueryArguments) (DbQuery, error) {
	t := qualifiedTable(b.ctx, m)
	s := sql.Dialect(b.ctx.Dialect()).Select(sel.All()...).From(t)

	if p := buildFilter(t.C, args.Filter); p != nil {
		s = s.Where(p)
	}
	if len(args.OrderBy) > 0 {
		s = s.OrderBy(orderByColumns(t, args.OrderBy)...)
	}
	if args.Take > 0 {
		s = s.Limit(args.Take)
	}
	if args.Skip > 0 {
		s = s.Offset(args.Skip)
	}
	return b.convertQuery(s), nil
}

func orderByColumns(t *sql.TableRef, terms []model.OrderTerm) []string {
	out := make([]string, len(terms))
	for i, term := range terms {
		dir := "ASC"
		if term.Desc {
			dir = "DESC"
		}
		out[i] = t.C(term.Field) + " " + dir
	}
	return out
}

// BuildAggregate implements §4.3.2: dispatches between the plain aggregate
// and group-by-aggregate shapes by whether agg carries a non-empty
// group-by list. Selection aliases always use the database column name.
func (b *SqlQueryBuilder) BuildAggregate(m *model.Model, args model.QueryArguments, agg model.AggregationSelection) (DbQuery, error) {
	t := qualifiedTable(b.ctx, m)
	cols := b.aggregateColumns(t, agg)
	if len(cols) == 0 {
		return DbQuery{}, &BuildError{Msg: "aggregate selection has no columns"}
	}

	s := sql.Dialect(b.ctx.Dialect()).Select(cols...).From(t)
	if p := buildFilter(t.C, args.Filter); p != nil {
		s = s.Where(p)
	}
	if agg.IsGroupBy() {
		groupCols := make([]string, len(agg.GroupBy))
		for i, f := range agg.GroupBy {
			groupCols[i] = t.C(f)
		}
		s = s.GroupBy(groupCols...)
		if agg.Having != nil {
			if p := buildFilter(t.C, *agg.Having); p != nil {
				s = s.Having(p)
			}
		}
	}
	return b.convertQuery(s), nil
}

func (b *SqlQueryBuilder) aggregateColumns(t *sql.TableRef, agg model.AggregationSelection) []string {
	var cols []string
	for _, f := range agg.GroupBy {
		cols = append(cols, t.C(f))
	}
	for _, f := range agg.Count {
		if f == "" {
			cols = append(cols, fmt.Sprintf("COUNT(*) AS %s", b.quote("count")))
			continue
		}
		cols = append(cols, fmt.Sprintf("COUNT(%s) AS %s", b.quotedColumn(t, f), b.quote(f)))
	}
	for _, f := range agg.Sum {
		cols = append(cols, fmt.Sprintf("SUM(%s) AS %s", b.quotedColumn(t, f), b.quote(f)))
	}
	for _, f := range agg.Avg {
		cols = append(cols, fmt.Sprintf("AVG(%s) AS %s", b.quotedColumn(t, f), b.quote(f)))
	}
	for _, f := range agg.Min {
		cols = append(cols, fmt.Sprintf("MIN(%s) AS %s", b.quotedColumn(t, f), b.quote(f)))
	}
	for _, f := range agg.Max {
		cols = append(cols, fmt.Sprintf("MAX(%s) AS %s", b.quotedColumn(t, f), b.quote(f)))
	}
	return cols
}

func (b *SqlQueryBuilder) quote(ident string) string {
	return sql.Quote(b.ctx.Dialect(), ident)
}

// quotedColumn renders t.C(field) ("table.field") with each segment quoted,
// since the aggregate expressions below embed it inside a function call
// rather than passing it through Selector's own Ident-based quoting.
func (b *SqlQueryBuilder) quotedColumn(t *sql.TableRef, field string) string {
	return b.quote(t.Ref()) + "." + b.quote(field)
}
