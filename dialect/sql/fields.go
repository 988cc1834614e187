package sql

// The Field* functions are the bridge between the generic field types in
// predicate.go and the plain *Predicate builders above: each returns a
// func(*Selector) that resolves the field's fully-qualified column name
// against the selector it's applied to before delegating to the matching
// comparison predicate.

// FieldEQ returns a selector predicate for "name = v".
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(EQ(s.C(name), v)) }
}

// FieldNEQ returns a selector predicate for "name <> v".
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(NEQ(s.C(name), v)) }
}

// FieldGT returns a selector predicate for "name > v".
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GT(s.C(name), v)) }
}

// FieldGTE returns a selector predicate for "name >= v".
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GTE(s.C(name), v)) }
}

// FieldLT returns a selector predicate for "name < v".
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LT(s.C(name), v)) }
}

// FieldLTE returns a selector predicate for "name <= v".
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LTE(s.C(name), v)) }
}

// FieldIn returns a selector predicate for "name IN (vs...)".
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(In(s.C(name), v...))
	}
}

// FieldNotIn returns a selector predicate for "name NOT IN (vs...)".
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) {
		v := make([]any, len(vs))
		for i := range vs {
			v[i] = vs[i]
		}
		s.Where(NotIn(s.C(name), v...))
	}
}

// FieldContains returns a selector predicate for "name LIKE '%v%'".
func FieldContains(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(Contains(s.C(name), v)) }
}

// FieldContainsFold is the case-insensitive form of FieldContains.
func FieldContainsFold(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(ContainsFold(s.C(name), v)) }
}

// FieldHasPrefix returns a selector predicate for "name LIKE 'v%'".
func FieldHasPrefix(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(HasPrefix(s.C(name), v)) }
}

// FieldHasSuffix returns a selector predicate for "name LIKE '%v'".
func FieldHasSuffix(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(HasSuffix(s.C(name), v)) }
}

// FieldEqualFold is the case-insensitive form of FieldEQ.
func FieldEqualFold(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(EqualFold(s.C(name), v)) }
}

// FieldIsNull returns a selector predicate for "name IS NULL".
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(IsNull(s.C(name))) }
}

// FieldNotNull returns a selector predicate for "name IS NOT NULL".
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(NotNull(s.C(name))) }
}
