// Package model is the SQL query builder's input vocabulary: the table and
// column metadata, filters, write arguments, and selections that every
// builder operation (§4.3) takes as arguments, grounded in the shapes the
// Rust connector passes across the model_extensions boundary
// (dialect/sql/sqlgraph carries the equivalent constraint-error taxonomy on
// the output side of the same boundary).
package model

// Arity is a column's cardinality, mirrored from the schema's field arity
// (required/optional/list) rather than re-derived from its Go type.
type Arity int

const (
	ArityRequired Arity = iota
	ArityOptional
	ArityList
)

// Column describes one column of a Model, carrying enough metadata for a
// caller to decode a result row without consulting the schema again.
type Column struct {
	Name     string
	DBName   string
	Type     string // a type identifier, e.g. "Int", "String", "DateTime", "Uuid"
	Nullable bool
	Arity    Arity
	// IsAutoIncrement marks the MySQL-style auto-increment primary key
	// field whose value the interpreter merges back via LAST_INSERT_ID.
	IsAutoIncrement bool
	// Default, when non-empty, is the database-side default expression
	// used by the MySQL insert-defaults materialization pipeline (§4.3.3).
	// Empty means the column has no schema-level default.
	Default string
}

// UniqueIndex names the columns (by DB name) of one unique constraint,
// including the primary key treated as the first unique index.
type UniqueIndex struct {
	Name    string
	Columns []string
}

// Model is a table's compiled metadata: its name, columns, unique
// constraints, primary identifier, and optional origin schema.
type Model struct {
	// Name is the model's declared (schema-level) name.
	Name string
	// DBName is the table's name in the database.
	DBName string
	// OriginSchema is the model's declared origin schema, if any ("" means
	// the model doesn't declare one and the context's default schema
	// applies, per §4.3.7).
	OriginSchema string
	Columns      []Column
	// PrimaryIdentifier names the columns (by DB name) making up the
	// primary identifier, in declared order.
	PrimaryIdentifier []string
	UniqueIndexes     []UniqueIndex
}

// Column looks up a column by its schema name.
func (m Model) Column(name string) (Column, bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryColumns returns the Column metadata for every primary identifier
// field, in declared order.
func (m Model) PrimaryColumns() []Column {
	cols := make([]Column, 0, len(m.PrimaryIdentifier))
	for _, name := range m.PrimaryIdentifier {
		for _, c := range m.Columns {
			if c.DBName == name {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

// AutoIncrementColumn returns the model's auto-increment primary key
// column, if it has one. Only meaningful on MySQL, which round-trips
// LAST_INSERT_ID(); other dialects return RETURNING/OUTPUT values
// directly.
func (m Model) AutoIncrementColumn() (Column, bool) {
	for _, c := range m.PrimaryColumns() {
		if c.IsAutoIncrement {
			return c, true
		}
	}
	return Column{}, false
}

// DefaultedPrimaryColumns returns the primary identifier columns that carry
// a schema-level default expression, the set the MySQL insert-defaults
// pipeline (§4.3.3) must materialize before the insert.
func (m Model) DefaultedPrimaryColumns() []Column {
	var out []Column
	for _, c := range m.PrimaryColumns() {
		if c.Default != "" {
			out = append(out, c)
		}
	}
	return out
}

// RelationField describes an m2m linkage: the join table and the columns
// on it referencing the parent and child models.
type RelationField struct {
	JoinTable  string
	ParentCol  string
	ChildCol   string
	ParentSide UniqueIndex
	ChildSide  UniqueIndex
}
