package model

// FieldSelection names the columns a read/aggregate operation should
// project, split between columns that were explicitly requested by the
// caller and "virtual" columns the builder adds on its own (e.g. primary
// identifier columns needed to merge a write result, even when the caller
// didn't ask for them back).
type FieldSelection struct {
	Explicit []string
	Virtual  []string
}

// All returns the explicit and virtual columns, explicit first, in the
// order a SELECT list should render them.
func (fs FieldSelection) All() []string {
	out := make([]string, 0, len(fs.Explicit)+len(fs.Virtual))
	out = append(out, fs.Explicit...)
	out = append(out, fs.Virtual...)
	return out
}

// SelectionResult is a materialized projection of one row: an ordered list
// of (field, value) pairs, the shape a ProjectedDataDependency transformer
// consumes and produces.
type SelectionResult []FieldValue

// FieldValue is one column's value within a SelectionResult.
type FieldValue struct {
	Field string
	Value any
}

// Get returns the value bound to field, if present.
func (sr SelectionResult) Get(field string) (any, bool) {
	for _, fv := range sr {
		if fv.Field == field {
			return fv.Value, true
		}
	}
	return nil, false
}

// Fields returns the field names present, in order.
func (sr SelectionResult) Fields() []string {
	out := make([]string, len(sr))
	for i, fv := range sr {
		out[i] = fv.Field
	}
	return out
}

// ToFilter converts this selection result into a RecordFilter matching
// exactly this row (used by the ExactlyOneFilter transformer consumer,
// §4.4.5).
func (sr SelectionResult) ToFilter() RecordFilter {
	eqs := make([]FieldEquals, len(sr))
	for i, fv := range sr {
		eqs[i] = FieldEquals{Field: fv.Field, Value: fv.Value}
	}
	return RecordFilter{Equals: eqs}
}

// QueryArguments bundle the read-path shaping controls: a filter, ordering,
// and pagination.
type QueryArguments struct {
	Filter  RecordFilter
	OrderBy []OrderTerm
	Take    int // 0 means unlimited
	Skip    int
}

// OrderTerm is one ORDER BY term.
type OrderTerm struct {
	Field string
	Desc  bool
}

// AggregationSelection describes the aggregate functions applied in a
// group-by or plain aggregate read, each producing one output column
// aliased to its database column name (§4.3.2).
type AggregationSelection struct {
	Count   []string // fields to COUNT individually; empty Field means COUNT(*)
	Sum     []string
	Avg     []string
	Min     []string
	Max     []string
	GroupBy []string
	Having  *RecordFilter
}

// IsGroupBy reports whether this selection should render as group_by_aggregate
// rather than a bare aggregate (§4.3.2: "selected by presence of a non-empty
// group-by list").
func (a AggregationSelection) IsGroupBy() bool {
	return len(a.GroupBy) > 0
}
