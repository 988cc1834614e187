package queryctx

import (
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/veloxql/dialect"
)

// Blank-importing the driver packages registers them with database/sql, the
// same pattern the teacher's own runnable example uses (shop/main.go's
// `_ "github.com/lib/pq"` / `_ "modernc.org/sqlite"`). This core never opens
// a connection itself, but a caller wiring a *sql.DB against one of these
// packages' registered driver name can recover the dialect family it
// implies via FamilyFromDriverName rather than hand-rolling the mapping.
var driverNameFamily = map[string]string{
	"postgres":  dialect.Postgres,
	"pgx":       dialect.Postgres,
	"mysql":     dialect.MySQL,
	"sqlite":    dialect.SQLite,
	"sqlite3":   dialect.SQLite,
	"mssql":     dialect.MSSQL,
	"sqlserver": dialect.MSSQL,
}

// FamilyFromDriverName maps a database/sql driver name (as passed to
// sql.Open) to the dialect family constant it implies. An unrecognized name
// passes through unchanged, since ConnectionInfo.Family ultimately just
// needs to match one of the dialect.* constants the rest of this package
// switches on.
func FamilyFromDriverName(name string) string {
	if f, ok := driverNameFamily[name]; ok {
		return f
	}
	return name
}
