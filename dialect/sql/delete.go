package sql

import "github.com/syssam/veloxql/dialect"

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder struct {
	*Builder
	table     string
	where     []*Predicate
	returning []string
}

// Where ANDs p onto the statement's WHERE clause.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	if p != nil {
		d.where = append(d.where, p)
	}
	return d
}

// Returning requests the listed columns back from the delete.
func (d *DeleteBuilder) Returning(cols ...string) *DeleteBuilder {
	d.returning = cols
	return d
}

// Query renders the statement and its bind parameters.
func (d *DeleteBuilder) Query() (string, []any) {
	b := d.Builder
	b.WriteString("DELETE FROM ").Ident(d.table)
	mssqlOutput := len(d.returning) > 0 && b.Dialect() == dialect.MSSQL
	if mssqlOutput {
		b.WriteString(" ")
		writeMSSQLOutputAs(b, "deleted", d.returning)
	}
	writeAnd(b, " WHERE ", d.where)
	if len(d.returning) > 0 && b.Dialect() != dialect.MySQL && b.Dialect() != dialect.MSSQL {
		b.WriteString(" RETURNING ")
		b.IdentComma(d.returning...)
	}
	return b.String(), b.Args()
}
