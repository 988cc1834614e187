package querybuilder

import (
	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/model"
	"github.com/syssam/veloxql/queryctx"
)

// resolveSchema applies §4.3.7's table-qualification policy: a model
// declaring an origin schema consults the context's dynamic schema remap,
// falling back to no schema prefix when the remap is configured but the
// origin isn't in it (the chosen resolution of the "target_schema returns
// None" case — see DESIGN.md); a model with no declared origin uses the
// context's default schema.
func resolveSchema(ctx *queryctx.Context, m *model.Model) string {
	if m.OriginSchema == "" {
		return ctx.SchemaName()
	}
	target, ok := ctx.TargetSchema(m.OriginSchema)
	if !ok {
		return ""
	}
	return target
}

// qualifiedTable returns m's table reference for a FROM/JOIN clause.
func qualifiedTable(ctx *queryctx.Context, m *model.Model) *sql.TableRef {
	t := sql.Table(m.DBName)
	if schema := resolveSchema(ctx, m); schema != "" {
		t = t.Schema(schema)
	}
	return t
}

// qualifiedTableName returns the dot-qualified table name for statement
// builders (Insert/Update/Delete) that take a bare table string rather
// than a TableRef.
func qualifiedTableName(ctx *queryctx.Context, m *model.Model) string {
	if schema := resolveSchema(ctx, m); schema != "" {
		return schema + "." + m.DBName
	}
	return m.DBName
}
