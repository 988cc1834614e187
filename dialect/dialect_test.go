package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSQLiteMatchesBothDriverNames(t *testing.T) {
	assert.True(t, IsSQLite(SQLite))
	assert.True(t, IsSQLite("sqlite"))
	assert.False(t, IsSQLite(Postgres))
}

func TestVersionExprPerFamily(t *testing.T) {
	assert.Equal(t, "SELECT version()", VersionExpr(Postgres))
	assert.Equal(t, "SELECT VERSION()", VersionExpr(MySQL))
	assert.Equal(t, "SELECT @@VERSION", VersionExpr(MSSQL))
	assert.Equal(t, "SELECT sqlite_version()", VersionExpr(SQLite))
}

func TestIsolationLevelSQLOrdersRelativeToBegin(t *testing.T) {
	stmt, before := IsolationLevelSQL(Postgres, "SERIALIZABLE")
	assert.Equal(t, "SET TRANSACTION ISOLATION LEVEL SERIALIZABLE", stmt)
	assert.False(t, before)

	stmt, before = IsolationLevelSQL(MySQL, "READ COMMITTED")
	assert.Equal(t, "SET TRANSACTION ISOLATION LEVEL READ COMMITTED", stmt)
	assert.True(t, before)

	_, before = IsolationLevelSQL(MSSQL, "SNAPSHOT")
	assert.True(t, before)
}
