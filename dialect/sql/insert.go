package sql

import (
	"sort"

	"github.com/syssam/veloxql/dialect"
)

// InsertBuilder builds an INSERT statement.
type InsertBuilder struct {
	*Builder
	table      string
	columns    []string
	values     [][]any
	defaultRow bool
	returning  []string
	conflict   *onConflictClause
}

type onConflictClause struct {
	target    []string
	doNothing bool
	updateSet map[string]any
}

// Columns sets the columns populated by each row passed to Values.
func (i *InsertBuilder) Columns(cols ...string) *InsertBuilder {
	i.columns = cols
	return i
}

// Values appends one row of values, positional against Columns.
func (i *InsertBuilder) Values(vs ...any) *InsertBuilder {
	i.values = append(i.values, vs)
	return i
}

// Default renders an all-default-values row (a single record with every
// column taking its schema default), the shape the MySQL default
// materialization pipeline falls back to when a table has no columns with
// client-supplied values.
func (i *InsertBuilder) Default() *InsertBuilder {
	i.defaultRow = true
	return i
}

// Returning requests the listed columns back from the insert (rendered as
// RETURNING on Postgres/SQLite, OUTPUT inserted.col on MSSQL, and silently
// dropped on MySQL, which has no equivalent clause).
func (i *InsertBuilder) Returning(cols ...string) *InsertBuilder {
	i.returning = cols
	return i
}

// OnConflictDoNothing renders an upsert that skips the row entirely on a
// conflicting key.
func (i *InsertBuilder) OnConflictDoNothing(target ...string) *InsertBuilder {
	i.conflict = &onConflictClause{target: target, doNothing: true}
	return i
}

// OnConflictDoUpdate renders an upsert that updates set on a conflicting key.
func (i *InsertBuilder) OnConflictDoUpdate(target []string, set map[string]any) *InsertBuilder {
	i.conflict = &onConflictClause{target: target, updateSet: set}
	return i
}

// Query renders the statement and its bind parameters.
func (i *InsertBuilder) Query() (string, []any) {
	b := i.Builder
	b.WriteString("INSERT INTO ").Ident(i.table)

	mssqlOutput := len(i.returning) > 0 && b.Dialect() == dialect.MSSQL

	switch {
	case i.defaultRow:
		if b.Dialect() == dialect.MySQL {
			b.WriteString(" ()")
			if mssqlOutput {
				writeMSSQLOutput(b, i.returning)
			}
			b.WriteString(" VALUES ()")
		} else {
			if mssqlOutput {
				b.WriteString(" ")
				writeMSSQLOutput(b, i.returning)
			}
			b.WriteString(" DEFAULT VALUES")
		}
	case len(i.columns) > 0:
		b.WriteString(" (")
		b.IdentComma(i.columns...)
		b.WriteString(")")
		if mssqlOutput {
			b.WriteString(" ")
			writeMSSQLOutput(b, i.returning)
		}
		b.WriteString(" VALUES ")
		for r, row := range i.values {
			if r > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			for c, v := range row {
				if c > 0 {
					b.WriteString(", ")
				}
				b.Arg(v)
			}
			b.WriteByte(')')
		}
	}

	if i.conflict != nil {
		i.writeConflict(b)
	}

	if len(i.returning) > 0 && b.Dialect() != dialect.MySQL && b.Dialect() != dialect.MSSQL {
		b.WriteString(" RETURNING ")
		b.IdentComma(i.returning...)
	}
	return b.String(), b.Args()
}

func writeMSSQLOutput(b *Builder, cols []string) {
	writeMSSQLOutputAs(b, "inserted", cols)
}

func writeMSSQLOutputAs(b *Builder, table string, cols []string) {
	b.WriteString("OUTPUT ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(table + ".")
		b.Ident(c)
	}
}

func (i *InsertBuilder) writeConflict(b *Builder) {
	oc := i.conflict
	keys := make([]string, 0, len(oc.updateSet))
	for k := range oc.updateSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	switch b.Dialect() {
	case dialect.MySQL:
		if oc.doNothing {
			if len(i.columns) > 0 {
				b.WriteString(" ON DUPLICATE KEY UPDATE ")
				b.Ident(i.columns[0]).WriteString(" = ").Ident(i.columns[0])
			}
			return
		}
		b.WriteString(" ON DUPLICATE KEY UPDATE ")
		for idx, k := range keys {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.Ident(k).WriteString(" = ").Arg(oc.updateSet[k])
		}
	default: // postgres, sqlite; mssql has no native upsert clause, callers emit MERGE instead
		b.WriteString(" ON CONFLICT")
		if len(oc.target) > 0 {
			b.WriteString(" (")
			b.IdentComma(oc.target...)
			b.WriteByte(')')
		}
		if oc.doNothing {
			b.WriteString(" DO NOTHING")
			return
		}
		b.WriteString(" DO UPDATE SET ")
		for idx, k := range keys {
			if idx > 0 {
				b.WriteString(", ")
			}
			b.Ident(k).WriteString(" = ").Arg(oc.updateSet[k])
		}
	}
}
