// Package querybuilder is the SQL Query Builder façade (§4.3): a
// dialect-parametric set of operations (get/aggregate/insert/update/
// upsert/delete/m2m) that take a Context plus a Model and operation
// arguments and render a DbQuery, the builder's portable output unit.
package querybuilder

import "github.com/syssam/veloxql/dialect/sql"

// DbQueryKind discriminates DbQuery's two variants.
type DbQueryKind int

const (
	KindTemplateSQL DbQueryKind = iota
	KindRawSQL
)

// DbQuery is the builder's output: either a parametrized template (fragments
// interleaved with placeholder positions, plus the dialect's placeholder
// format) or caller-supplied raw SQL. Both carry positional bind params.
type DbQuery struct {
	Kind DbQueryKind

	// TemplateSql
	Fragments         []sql.Fragment
	PlaceholderFormat sql.PlaceholderFormat

	// RawSql
	SQL string

	Params []any
}

// TemplateSQL builds the TemplateSql variant.
func TemplateSQL(fragments []sql.Fragment, format sql.PlaceholderFormat, params []any) DbQuery {
	return DbQuery{Kind: KindTemplateSQL, Fragments: fragments, PlaceholderFormat: format, Params: params}
}

// RawSQL builds the RawSql variant: caller-supplied literal SQL passed
// straight through (§4.3's `build_raw`).
func RawSQL(sqlText string, params []any) DbQuery {
	return DbQuery{Kind: KindRawSQL, SQL: sqlText, Params: params}
}
