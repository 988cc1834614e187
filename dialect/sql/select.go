package sql

import (
	"strconv"
	"strings"
)

// Selector builds a SELECT statement.
type Selector struct {
	*Builder
	columns  []string
	distinct bool
	from     *TableRef
	joins    []selectorJoin
	where    []*Predicate
	groupBy  []string
	having   []*Predicate
	orderBy  []string
	limitN   *int
	offsetN  *int
}

type selectorJoin struct {
	kind  string
	table *TableRef
	on    *Predicate
}

// From sets the statement's source table.
func (s *Selector) From(t *TableRef) *Selector {
	s.from = t
	return s
}

// Distinct adds DISTINCT to the select list.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// C returns the fully-qualified column reference "table.name" (or just
// "name" if the selector has no FROM table yet), ready to pass to a
// predicate constructor.
func (s *Selector) C(name string) string {
	if s.from != nil {
		return s.from.C(name)
	}
	return name
}

// JoinBuilder accumulates the ON clause of a pending join.
type JoinBuilder struct {
	sel   *Selector
	kind  string
	table *TableRef
}

// Join adds an INNER JOIN against t.
func (s *Selector) Join(t *TableRef) *JoinBuilder {
	return &JoinBuilder{sel: s, kind: "JOIN", table: t}
}

// LeftJoin adds a LEFT JOIN against t.
func (s *Selector) LeftJoin(t *TableRef) *JoinBuilder {
	return &JoinBuilder{sel: s, kind: "LEFT JOIN", table: t}
}

// On completes the join with an equality condition between left and right
// column references, returning the selector to continue the chain.
func (j *JoinBuilder) On(left, right string) *Selector {
	j.sel.joins = append(j.sel.joins, selectorJoin{
		kind:  j.kind,
		table: j.table,
		on:    P(func(b *Builder) { b.Ident(left).WriteString(" = ").Ident(right) }),
	})
	return j.sel
}

// OnP completes the join with an arbitrary predicate.
func (j *JoinBuilder) OnP(p *Predicate) *Selector {
	j.sel.joins = append(j.sel.joins, selectorJoin{kind: j.kind, table: j.table, on: p})
	return j.sel
}

// Where ANDs p onto the statement's WHERE clause.
func (s *Selector) Where(p *Predicate) *Selector {
	if p != nil {
		s.where = append(s.where, p)
	}
	return s
}

// GroupBy adds a GROUP BY clause.
func (s *Selector) GroupBy(cols ...string) *Selector {
	s.groupBy = append(s.groupBy, cols...)
	return s
}

// Having ANDs p onto the statement's HAVING clause.
func (s *Selector) Having(p *Predicate) *Selector {
	if p != nil {
		s.having = append(s.having, p)
	}
	return s
}

// OrderBy adds columns to the ORDER BY clause. A column may carry a
// trailing " ASC"/" DESC" direction.
func (s *Selector) OrderBy(cols ...string) *Selector {
	s.orderBy = append(s.orderBy, cols...)
	return s
}

// Limit sets the LIMIT clause.
func (s *Selector) Limit(n int) *Selector {
	s.limitN = &n
	return s
}

// Offset sets the OFFSET clause.
func (s *Selector) Offset(n int) *Selector {
	s.offsetN = &n
	return s
}

// Query renders the statement and its bind parameters.
func (s *Selector) Query() (string, []any) {
	b := s.Builder
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		b.IdentComma(s.columns...)
	}
	if s.from != nil {
		b.WriteString(" FROM ")
		s.from.render(b)
	}
	for _, j := range s.joins {
		b.WriteString(" ").WriteString(j.kind).WriteString(" ")
		j.table.render(b)
		b.WriteString(" ON ")
		j.on.render(b)
	}
	writeAnd(b, " WHERE ", s.where)
	if len(s.groupBy) > 0 {
		b.WriteString(" GROUP BY ")
		b.IdentComma(s.groupBy...)
	}
	writeAnd(b, " HAVING ", s.having)
	if len(s.orderBy) > 0 {
		b.WriteString(" ORDER BY ")
		writeOrderBy(b, s.orderBy)
	}
	if s.limitN != nil {
		b.WriteString(" LIMIT ").WriteString(strconv.Itoa(*s.limitN))
	}
	if s.offsetN != nil {
		b.WriteString(" OFFSET ").WriteString(strconv.Itoa(*s.offsetN))
	}
	return b.String(), b.Args()
}

func writeAnd(b *Builder, clause string, preds []*Predicate) {
	if len(preds) == 0 {
		return
	}
	b.WriteString(clause)
	for i, p := range preds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		p.render(b)
	}
}

func writeOrderBy(b *Builder, cols []string) {
	for i, col := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		name, dir := col, ""
		if sp := strings.LastIndex(col, " "); sp != -1 {
			if rest := col[sp+1:]; strings.EqualFold(rest, "asc") || strings.EqualFold(rest, "desc") {
				name, dir = col[:sp], " "+strings.ToUpper(rest)
			}
		}
		b.Ident(name)
		b.WriteString(dir)
	}
}
