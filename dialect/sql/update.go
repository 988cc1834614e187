package sql

import "github.com/syssam/veloxql/dialect"

// UpdateBuilder builds an UPDATE statement.
type UpdateBuilder struct {
	*Builder
	table     string
	setCols   []string
	setVals   []any
	where     []*Predicate
	returning []string
}

// Set appends a "col = v" assignment.
func (u *UpdateBuilder) Set(col string, v any) *UpdateBuilder {
	u.setCols = append(u.setCols, col)
	u.setVals = append(u.setVals, v)
	return u
}

// Where ANDs p onto the statement's WHERE clause.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	if p != nil {
		u.where = append(u.where, p)
	}
	return u
}

// Returning requests the listed columns back from the update.
func (u *UpdateBuilder) Returning(cols ...string) *UpdateBuilder {
	u.returning = cols
	return u
}

// Query renders the statement and its bind parameters.
func (u *UpdateBuilder) Query() (string, []any) {
	b := u.Builder
	b.WriteString("UPDATE ").Ident(u.table).WriteString(" SET ")
	mssqlOutput := len(u.returning) > 0 && b.Dialect() == dialect.MSSQL
	for i := range u.setCols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(u.setCols[i]).WriteString(" = ").Arg(u.setVals[i])
	}
	if mssqlOutput {
		b.WriteString(" ")
		writeMSSQLOutputAs(b, "inserted", u.returning)
	}
	writeAnd(b, " WHERE ", u.where)
	if len(u.returning) > 0 && b.Dialect() != dialect.MySQL && b.Dialect() != dialect.MSSQL {
		b.WriteString(" RETURNING ")
		b.IdentComma(u.returning...)
	}
	return b.String(), b.Args()
}
