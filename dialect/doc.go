// Package dialect provides the database dialect abstraction the query
// compilation core builds on: family constants plus the dialect-specific
// SQL text (version probes, isolation-level statements) the builder and
// queryctx packages need without importing a driver themselves.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite3"
//	dialect.MSSQL    = "mssql"
//
// # Driver Interface
//
// Driver/Tx/ExecQuerier describe the seam a caller implements on top of a
// real database/sql connection to actually execute a DbQuery this core
// produces — this package defines the interfaces, but has no concrete
// implementation of them; connecting, pooling, and shipping SQL to a
// client are out of scope here (see SPEC_FULL.md §1, §5):
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Transaction Interface
//
// The Tx interface extends Driver with transaction methods:
//
//	type Tx interface {
//	    Driver
//	    Commit() error
//	    Rollback() error
//	}
//
// # ExecQuerier Interface
//
// The ExecQuerier interface is implemented by both Driver and Tx:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Sub-packages
//
//   - dialect/sql: dialect-parametric SQL builders (Selector, InsertBuilder,
//     UpdateBuilder, DeleteBuilder)
//   - dialect/sql/sqlgraph: constraint-error classification across all four
//     dialects' native error shapes
package dialect
