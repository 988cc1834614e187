package querybuilder

import (
	"github.com/syssam/veloxql/dialect"
	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/model"
)

// BuildM2MConnect implements §4.3.5: insert into rel's join table pairing
// every parent value against every child value. parent/child may each be a
// single id or a list; rather than materializing the cross-product as a
// literal VALUES list, the statement selects from an opaque parametrized
// `product(parent, child)` generator call, matching the source connector's
// approach of pushing the cross-product computation into the database.
// Conflict policy is always DO NOTHING.
func (b *SqlQueryBuilder) BuildM2MConnect(rel model.RelationField, parentModel, childModel string, parent, child []any) (DbQuery, error) {
	if len(parent) == 0 || len(child) == 0 {
		return DbQuery{}, &BuildError{Msg: "m2m connect requires at least one parent and one child value"}
	}

	joinTable := rel.JoinTableOrDefault(parentModel, childModel)
	bb := sql.NewBuilder(b.ctx.Dialect())
	bb.WriteString("INSERT INTO ").Ident(joinTable).
		WriteString(" (").IdentComma(rel.ParentCol, rel.ChildCol).WriteString(")").
		WriteString(" SELECT * FROM product(")
	writeArgList(bb, parent)
	bb.WriteString(", ")
	writeArgList(bb, child)
	bb.WriteString(")")
	writeM2MConflict(bb, rel)

	return b.withTrace(TemplateSQL(bb.Fragments(), sql.Placeholders(b.ctx.Dialect()), bb.Args())), nil
}

func writeArgList(b *sql.Builder, vs []any) {
	b.WriteByte('(')
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Arg(v)
	}
	b.WriteByte(')')
}

func writeM2MConflict(b *sql.Builder, rel model.RelationField) {
	switch b.Dialect() {
	case dialect.MySQL:
		b.WriteString(" ON DUPLICATE KEY UPDATE ").Ident(rel.ParentCol).WriteString(" = ").Ident(rel.ParentCol)
	default:
		b.WriteString(" ON CONFLICT (").IdentComma(rel.ParentCol, rel.ChildCol).WriteString(") DO NOTHING")
	}
}

// BuildM2MDisconnect implements §4.3.5: delete every row of rel's join
// table matching the cross-product of (parent, children).
func (b *SqlQueryBuilder) BuildM2MDisconnect(rel model.RelationField, parentModel, childModel string, parent any, children []any) (DbQuery, error) {
	if len(children) == 0 {
		return DbQuery{}, &BuildError{Msg: "m2m disconnect requires at least one child value"}
	}

	joinTable := rel.JoinTableOrDefault(parentModel, childModel)
	bb := sql.NewBuilder(b.ctx.Dialect())
	bb.WriteString("DELETE FROM ").Ident(joinTable).WriteString(" WHERE ")
	bb.Ident(rel.ParentCol).WriteString(" = ").Arg(parent)
	bb.WriteString(" AND ")
	bb.Ident(rel.ChildCol).WriteString(" IN (")
	for i, v := range children {
		if i > 0 {
			bb.WriteString(", ")
		}
		bb.Arg(v)
	}
	bb.WriteByte(')')

	return b.withTrace(TemplateSQL(bb.Fragments(), sql.Placeholders(b.ctx.Dialect()), bb.Args())), nil
}
