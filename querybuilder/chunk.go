package querybuilder

import (
	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/model"
)

// ParameterLimit is the builder's conservative default cap on bind
// parameters per chunked statement, used when a connection doesn't report
// a tighter one (§4.3.6); mirrored as queryctx.ConnectionInfo's fallback.
const ParameterLimit = 2000

// ChunkSelectionResults splits rows into fixed-size batches no larger than
// min(limit, ParameterLimit), preserving order: the builder chunks at
// ParameterLimit regardless of what the caller asks for, so a connection
// reporting a MaxBindValues above 2000 still gets 2000-row chunks. limit
// <= 0 falls back to ParameterLimit outright.
func ChunkSelectionResults(rows []model.SelectionResult, limit int) [][]model.SelectionResult {
	if limit <= 0 || limit > ParameterLimit {
		limit = ParameterLimit
	}
	var chunks [][]model.SelectionResult
	for len(rows) > 0 {
		n := limit
		if n > len(rows) {
			n = len(rows)
		}
		chunks = append(chunks, rows[:n:n])
		rows = rows[n:]
	}
	return chunks
}

// InConditions renders one chunk of identifier rows as a WHERE condition
// (§4.3.6): the composite-key IN/OR-of-AND form, unless the chunk is the
// single-row placeholder shape (InFilter.IsPlaceholderRow), in which case
// it emits one equality per column against the PlaceholderValue sentinel
// instead of that IN list — a parametrized-row condition whose
// bound value a caller fills in per execution rather than per compile.
func InConditions(qualify func(string) string, fields []string, rows []model.SelectionResult) *sql.Predicate {
	f := model.InFilter{Fields: fields, Rows: rows}
	if f.IsPlaceholderRow() {
		preds := make([]*sql.Predicate, len(fields))
		for i, field := range fields {
			preds[i] = sql.EQ(qualify(field), model.PlaceholderValue)
		}
		return sql.And(preds...)
	}
	return buildInFilter(qualify, f)
}
