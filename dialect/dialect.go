package dialect

import "context"

// Family name constants for the supported SQL dialects.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite3"
	MSSQL    = "mssql"
)

// Driver is the interface implemented by the different dialect drivers.
// The dialect package itself never opens a connection or ships SQL over the
// wire; it only describes the contract the query builder's output flows
// through before reaching an actual database/sql-backed implementation.
type Driver interface {
	// Exec executes a query that doesn't return rows. For example, in SQL, INSERT or UPDATE.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	Query(ctx context.Context, query string, args, v any) error
	// Tx starts and returns a transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is the interface that must be satisfied by the different dialect
// transactions.
type Tx interface {
	Driver
	// Commit commits the transaction.
	Commit() error
	// Rollback rollbacks the transaction.
	Rollback() error
}

// ExecQuerier wraps the Exec and Query methods.
type ExecQuerier interface {
	Exec(ctx context.Context, query string, args, v any) error
	Query(ctx context.Context, query string, args, v any) error
}

// IsSQLite reports whether the family string identifies SQLite: an exact
// match of either the SQLite family constant ("sqlite3") or "sqlite", the
// name modernc.org/sqlite registers its driver under.
func IsSQLite(family string) bool {
	return family == SQLite || family == "sqlite"
}

// VersionExpr returns the dialect-specific SQL expression used to query the
// server/engine version. Used only by the schema/health-check layer, never
// by the query builder itself.
func VersionExpr(family string) string {
	switch family {
	case Postgres:
		return "SELECT version()"
	case MySQL:
		return "SELECT VERSION()"
	case MSSQL:
		return "SELECT @@VERSION"
	default:
		return "SELECT sqlite_version()"
	}
}

// IsolationLevelSQL returns the literal SQL statement that sets the
// transaction isolation level for the given family, and whether that
// statement must run before BEGIN (true for MySQL/MSSQL) or after it
// (false for Postgres/SQLite).
func IsolationLevelSQL(family, level string) (stmt string, beforeBegin bool) {
	stmt = "SET TRANSACTION ISOLATION LEVEL " + level
	switch family {
	case MySQL, MSSQL:
		return stmt, true
	default:
		return stmt, false
	}
}
