package sql

// Predicate is a renderable WHERE/HAVING/ON condition. Comparison functions
// (EQ, In, ...) return leaf predicates; And/Or/Not combine them into trees.
type Predicate struct {
	fns []func(*Builder)
}

// P wraps one or more builder-writing functions as a single predicate.
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

func (p *Predicate) render(b *Builder) {
	for _, fn := range p.fns {
		fn(b)
	}
}

func cmp(op string, col string, v any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(op).Arg(v)
	})
}

// EQ returns a "col = v" predicate.
func EQ(col string, v any) *Predicate { return cmp(" = ", col, v) }

// NEQ returns a "col <> v" predicate.
func NEQ(col string, v any) *Predicate { return cmp(" <> ", col, v) }

// GT returns a "col > v" predicate.
func GT(col string, v any) *Predicate { return cmp(" > ", col, v) }

// GTE returns a "col >= v" predicate.
func GTE(col string, v any) *Predicate { return cmp(" >= ", col, v) }

// LT returns a "col < v" predicate.
func LT(col string, v any) *Predicate { return cmp(" < ", col, v) }

// LTE returns a "col <= v" predicate.
func LTE(col string, v any) *Predicate { return cmp(" <= ", col, v) }

// In returns a "col IN (...)" predicate. An empty vs renders a predicate
// that never matches, matching SQL's semantics for IN over an empty list.
func In(col string, vs ...any) *Predicate {
	if len(vs) == 0 {
		return P(func(b *Builder) { b.WriteString("1 = 0") })
	}
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IN (")
		for i, v := range vs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(v)
		}
		b.WriteByte(')')
	})
}

// NotIn returns a "col NOT IN (...)" predicate. An empty vs renders a
// predicate that always matches.
func NotIn(col string, vs ...any) *Predicate {
	if len(vs) == 0 {
		return P(func(b *Builder) { b.WriteString("1 = 1") })
	}
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" NOT IN (")
		for i, v := range vs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(v)
		}
		b.WriteByte(')')
	})
}

// IsNull returns a "col IS NULL" predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" IS NULL") })
}

// NotNull returns a "col IS NOT NULL" predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" IS NOT NULL") })
}

// Contains returns a "col LIKE '%v%'" predicate.
func Contains(col, substr string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" LIKE ").Arg("%" + substr + "%") })
}

// ContainsFold is the case-insensitive form of Contains.
func ContainsFold(col, substr string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("LOWER(")
		b.Ident(col)
		b.WriteString(") LIKE LOWER(")
		b.Arg("%" + substr + "%")
		b.WriteByte(')')
	})
}

// HasPrefix returns a "col LIKE 'v%'" predicate.
func HasPrefix(col, prefix string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" LIKE ").Arg(prefix + "%") })
}

// HasSuffix returns a "col LIKE '%v'" predicate.
func HasSuffix(col, suffix string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" LIKE ").Arg("%" + suffix) })
}

// EqualFold is the case-insensitive form of EQ.
func EqualFold(col, v string) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("LOWER(")
		b.Ident(col)
		b.WriteString(") = LOWER(")
		b.Arg(v)
		b.WriteByte(')')
	})
}

// And combines predicates with AND, parenthesizing the group when it joins
// more than one predicate so it composes safely with a surrounding OR.
func And(preds ...*Predicate) *Predicate {
	return join(" AND ", preds)
}

// Or combines predicates with OR, parenthesizing the group when it joins
// more than one predicate so it composes safely with a surrounding AND.
func Or(preds ...*Predicate) *Predicate {
	return join(" OR ", preds)
}

func join(sep string, preds []*Predicate) *Predicate {
	return P(func(b *Builder) {
		switch len(preds) {
		case 0:
			return
		case 1:
			preds[0].render(b)
			return
		}
		b.WriteByte('(')
		for i, p := range preds {
			if i > 0 {
				b.WriteString(sep)
			}
			p.render(b)
		}
		b.WriteByte(')')
	})
}

// Not negates a predicate.
func Not(p *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT (")
		p.render(b)
		b.WriteByte(')')
	})
}
