package querybuilder

import (
	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/model"
)

// buildFilter translates a RecordFilter into a *sql.Predicate. qualify
// resolves a bare field name into whatever column reference the enclosing
// statement needs (alias-qualified for a SELECT's WHERE, bare for an
// UPDATE/DELETE's own table). Returns nil for an empty filter.
func buildFilter(qualify func(string) string, rf model.RecordFilter) *sql.Predicate {
	if rf.IsEmpty() {
		return nil
	}

	var preds []*sql.Predicate
	for _, eq := range rf.Equals {
		preds = append(preds, sql.EQ(qualify(eq.Field), eq.Value))
	}
	if rf.In != nil {
		if p := buildInFilter(qualify, *rf.In); p != nil {
			preds = append(preds, p)
		}
	}
	for _, sub := range rf.And {
		if p := buildFilter(qualify, sub); p != nil {
			preds = append(preds, p)
		}
	}
	if len(rf.Or) > 0 {
		var orPreds []*sql.Predicate
		for _, sub := range rf.Or {
			if p := buildFilter(qualify, sub); p != nil {
				orPreds = append(orPreds, p)
			}
		}
		if len(orPreds) > 0 {
			preds = append(preds, sql.Or(orPreds...))
		}
	}
	for _, sub := range rf.Not {
		if p := buildFilter(qualify, sub); p != nil {
			preds = append(preds, sql.Not(p))
		}
	}
	return sql.And(preds...)
}

// buildInFilter renders an InFilter: a single-column IN when the key is
// scalar, or an OR-of-ANDed-equalities over each row when the key is
// composite (no dialect here supports row-value IN portably).
func buildInFilter(qualify func(string) string, f model.InFilter) *sql.Predicate {
	if len(f.Fields) == 0 || len(f.Rows) == 0 {
		return nil
	}
	if len(f.Fields) == 1 {
		col := qualify(f.Fields[0])
		vals := make([]any, len(f.Rows))
		for i, row := range f.Rows {
			v, _ := row.Get(f.Fields[0])
			vals[i] = v
		}
		return sql.In(col, vals...)
	}

	rowPreds := make([]*sql.Predicate, len(f.Rows))
	for i, row := range f.Rows {
		eqs := make([]*sql.Predicate, len(f.Fields))
		for j, field := range f.Fields {
			v, _ := row.Get(field)
			eqs[j] = sql.EQ(qualify(field), v)
		}
		rowPreds[i] = sql.And(eqs...)
	}
	return sql.Or(rowPreds...)
}
