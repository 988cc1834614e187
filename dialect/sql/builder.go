package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/veloxql/dialect"
)

// Fragment is one chunk of a rendered statement's template form: either a
// literal piece of SQL text, or a placeholder standing in for a bind
// parameter. Lowering a [Querier] to fragments is what lets a caller
// re-render a query with late-bound parameters (the "build template" form
// described by the dialect visitor contract).
type Fragment struct {
	Literal       string
	IsPlaceholder bool
	Index         int // 1-based bind index; meaningful only when IsPlaceholder
}

// PlaceholderFormat describes how a dialect spells its bind parameters.
type PlaceholderFormat struct {
	Prefix    string // "$", "?", or "@P"
	BaseIndex int     // first index used when the dialect numbers its placeholders
}

// Quote quotes a single SQL identifier per the dialect's rules.
func Quote(dialectName, ident string) string {
	switch dialectName {
	case dialect.MySQL:
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	case dialect.MSSQL:
		return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
	default:
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
}

// Placeholders returns the format used to number bind parameters for dialectName.
func Placeholders(dialectName string) PlaceholderFormat {
	switch dialectName {
	case dialect.Postgres:
		return PlaceholderFormat{Prefix: "$", BaseIndex: 1}
	case dialect.MSSQL:
		return PlaceholderFormat{Prefix: "@P", BaseIndex: 1}
	default:
		return PlaceholderFormat{Prefix: "?"}
	}
}

// Builder is the shared string/args accumulator used by every statement
// type (Selector, InsertBuilder, UpdateBuilder, DeleteBuilder). Dialect
// dispatch happens at the field level (a `dialect string`) rather than via
// a generic type parameter per dialect: the SQL text differs by a handful
// of runtime branches (placeholder syntax, identifier quoting, conflict
// clause), not by type, so this is the idiomatic-Go rendering of the
// "dialect visitor" role.
type Builder struct {
	sb        strings.Builder
	dialectID string
	args      []any
	total     int
	fragments []Fragment
	flushed   int
	comment   string
}

// NewBuilder returns an empty Builder rendering for the given dialect family.
func NewBuilder(dialectName string) *Builder {
	return &Builder{dialectID: dialectName}
}

// Dialect returns the dialect family this builder renders for.
func (b *Builder) Dialect() string { return b.dialectID }

// WriteString appends literal SQL text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends a literal byte.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Quote quotes ident per this builder's dialect.
func (b *Builder) Quote(ident string) string {
	return Quote(b.dialectID, ident)
}

// Ident writes a (possibly dot-qualified) identifier, quoting each segment.
// Expressions that are clearly not bare identifiers (function calls, "*")
// are passed through unquoted.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case s == "":
		return b
	case s == "*", strings.ContainsAny(s, "(/"):
		b.sb.WriteString(s)
		return b
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if i > 0 {
			b.sb.WriteByte('.')
		}
		b.sb.WriteString(b.Quote(p))
	}
	return b
}

// IdentComma writes a comma-separated list of identifiers.
func (b *Builder) IdentComma(idents ...string) *Builder {
	for i, id := range idents {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.Ident(id)
	}
	return b
}

func (b *Builder) flushLiteral() {
	s := b.sb.String()
	if len(s) > b.flushed {
		b.fragments = append(b.fragments, Fragment{Literal: s[b.flushed:]})
		b.flushed = len(s)
	}
}

// Arg writes a bind-parameter placeholder and records v as a parameter.
// A [Placeholder] value is recorded like any other value, so it takes a
// placeholder position in the template and its name travels with the
// statement's params until its concrete value is bound (used by the MySQL
// default-materialization pipeline, §4.3.3).
func (b *Builder) Arg(v any) *Builder {
	b.flushLiteral()
	b.total++
	b.sb.WriteString(b.placeholder(b.total))
	b.flushed = b.sb.Len()
	b.fragments = append(b.fragments, Fragment{IsPlaceholder: true, Index: b.total})
	b.args = append(b.args, v)
	return b
}

func (b *Builder) placeholder(n int) string {
	f := Placeholders(b.dialectID)
	if f.Prefix == "?" {
		return "?"
	}
	return f.Prefix + strconv.Itoa(n)
}

// Comment sets a trailing SQL comment (e.g. a trace-parent annotation)
// appended after the statement body.
func (b *Builder) Comment(c string) *Builder {
	b.comment = c
	return b
}

// String renders the accumulated SQL text.
func (b *Builder) String() string {
	if b.comment == "" {
		return b.sb.String()
	}
	return b.sb.String() + " /* " + b.comment + " */"
}

// Args returns the accumulated bind parameters in order.
func (b *Builder) Args() []any { return b.args }

// Fragments returns the template form of the statement: literal chunks
// interleaved with placeholder positions.
func (b *Builder) Fragments() []Fragment {
	b.flushLiteral()
	frags := append([]Fragment(nil), b.fragments...)
	if b.comment != "" {
		frags = append(frags, Fragment{Literal: " /* " + b.comment + " */"})
	}
	return frags
}

// Placeholder is an opaque, named bind value whose concrete value is
// resolved later (e.g. a MySQL default expression materialized by a
// companion SELECT before the INSERT it belongs to, §4.3.3).
type Placeholder struct {
	Name string
}

// NewPlaceholder returns a placeholder bound under name.
func NewPlaceholder(name string) Placeholder { return Placeholder{Name: name} }

func (p Placeholder) render(dialectName string, nextIndex int) string {
	switch dialectName {
	case dialect.Postgres:
		return "$" + strconv.Itoa(nextIndex)
	case dialect.MSSQL:
		return "@P" + strconv.Itoa(nextIndex)
	default:
		return "?"
	}
}

// Querier is implemented by every statement builder: it renders the final
// SQL text and its positional bind parameters.
type Querier interface {
	Query() (string, []any)
}

// Template renders q into its portable, late-bindable form.
func Template(dialectName string, q interface{ Fragments() []Fragment }) (frags []Fragment, format PlaceholderFormat) {
	return q.Fragments(), Placeholders(dialectName)
}

// TableRef is a table reference usable in FROM/JOIN clauses, optionally
// schema-qualified and/or aliased.
type TableRef struct {
	schema string
	name   string
	alias  string
}

// Table starts a table reference.
func Table(name string) *TableRef { return &TableRef{name: name} }

// Schema sets the schema (namespace) qualifier for the table.
func (t *TableRef) Schema(schema string) *TableRef {
	tc := *t
	tc.schema = schema
	return &tc
}

// As sets an alias for the table reference.
func (t *TableRef) As(alias string) *TableRef {
	tc := *t
	tc.alias = alias
	return &tc
}

// Ref returns the name used to address this table elsewhere in the
// statement (its alias if set, else its bare name).
func (t *TableRef) Ref() string {
	if t.alias != "" {
		return t.alias
	}
	return t.name
}

// C returns the (unquoted, dot-qualified) column reference "ref.name" for
// a column on this table, e.g. passed to [EQ] or [Selector.Where].
func (t *TableRef) C(name string) string {
	return t.Ref() + "." + name
}

func (t *TableRef) render(b *Builder) {
	if t.schema != "" {
		b.Ident(t.schema + "." + t.name)
	} else {
		b.Ident(t.name)
	}
	if t.alias != "" {
		b.WriteString(" AS ").Ident(t.alias)
	}
}

// DialectBuilder is the entry point for constructing dialect-rendered
// statements: sql.Dialect(dialect.Postgres).Select()....
type DialectBuilder struct {
	dialectID string
}

// Dialect returns a statement factory bound to the given dialect family.
func Dialect(dialectName string) *DialectBuilder {
	return &DialectBuilder{dialectID: dialectName}
}

// Select starts a SELECT statement. With no columns, "*" is selected.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	return &Selector{Builder: NewBuilder(d.dialectID), columns: columns}
}

// Insert starts an INSERT statement against table.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	return &InsertBuilder{Builder: NewBuilder(d.dialectID), table: table}
}

// Update starts an UPDATE statement against table.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	return &UpdateBuilder{Builder: NewBuilder(d.dialectID), table: table}
}

// Delete starts a DELETE statement against table.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{Builder: NewBuilder(d.dialectID), table: table}
}
