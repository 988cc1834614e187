package model

// RecordFilter is the builder's filter vocabulary: a conjunction of scalar
// comparisons, an optional IN-list filter over a composite key (the shape
// parameter chunking operates on, §4.3.6), and nested boolean combinators.
type RecordFilter struct {
	Equals []FieldEquals
	In     *InFilter
	And    []RecordFilter
	Or     []RecordFilter
	Not    []RecordFilter
}

// FieldEquals is a single "field = value" scalar comparison.
type FieldEquals struct {
	Field string
	Value any
}

// InFilter matches rows whose (Fields...) tuple appears in Rows. A single
// field with a placeholder row (see IsPlaceholderRow) is rendered by the
// chunking helper as a parametrized equality instead of an IN list (§4.3.6).
type InFilter struct {
	Fields []string
	Rows   []SelectionResult
}

// IsPlaceholderRow reports whether rows is the single-placeholder-row shape
// the chunking helper special-cases: exactly one field, one row, whose
// value is the sentinel PlaceholderValue.
func (f InFilter) IsPlaceholderRow() bool {
	return len(f.Fields) == 1 && len(f.Rows) == 1 && len(f.Rows[0]) == 1 &&
		f.Rows[0][0].Value == PlaceholderValue
}

// PlaceholderValue is the sentinel used by InFilter.IsPlaceholderRow.
var PlaceholderValue = struct{ placeholder bool }{true}

// IsEmpty reports whether this filter carries no constraints.
func (rf RecordFilter) IsEmpty() bool {
	return len(rf.Equals) == 0 && rf.In == nil && len(rf.And) == 0 && len(rf.Or) == 0 && len(rf.Not) == 0
}

// WriteArgs is an ordered set of field -> value assignments for an
// insert/update, preserving caller order so generated SQL is deterministic
// and so ProjectedDataSinkDependency's ExactlyOneWriteArgs consumer can
// assimilate a parent row's fields into named write args in the order they
// were declared.
type WriteArgs struct {
	fields []string
	values map[string]any
}

// NewWriteArgs builds a WriteArgs from an ordered field list and their values.
func NewWriteArgs(fields []string, values map[string]any) WriteArgs {
	return WriteArgs{fields: append([]string(nil), fields...), values: values}
}

// Fields returns the assigned field names in declaration order.
func (wa WriteArgs) Fields() []string { return wa.fields }

// Get returns the value assigned to field.
func (wa WriteArgs) Get(field string) (any, bool) {
	v, ok := wa.values[field]
	return v, ok
}

// Set assigns value to field, appending it to the field order if new.
func (wa *WriteArgs) Set(field string, value any) {
	if wa.values == nil {
		wa.values = make(map[string]any)
	}
	if _, exists := wa.values[field]; !exists {
		wa.fields = append(wa.fields, field)
	}
	wa.values[field] = value
}

// Len returns the number of assigned fields.
func (wa WriteArgs) Len() int { return len(wa.fields) }

// AssimilateRow merges a parent row's fields into this WriteArgs under
// selection sel, used by the ExactlyOneWriteArgs transformer consumer
// (§4.4.5) to wire a parent's generated key into a dependent insert/update.
func (wa *WriteArgs) AssimilateRow(sel []string, row SelectionResult) {
	for _, field := range sel {
		if v, ok := row.Get(field); ok {
			wa.Set(field, v)
		}
	}
}

// RefreshUpdatedAt sets every column in updatedAtFields to now, the
// "refresh any @updatedAt-style datetime fields" behavior the
// ExactlyOneWriteArgs consumer performs after assimilation (§4.4.5).
func (wa *WriteArgs) RefreshUpdatedAt(updatedAtFields []string, now any) {
	for _, f := range updatedAtFields {
		wa.Set(f, now)
	}
}
