package queryctx

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyFromDriverNameMapsRegisteredDriverNames(t *testing.T) {
	assert.Equal(t, "postgres", FamilyFromDriverName("postgres"))
	assert.Equal(t, "postgres", FamilyFromDriverName("pgx"))
	assert.Equal(t, "mysql", FamilyFromDriverName("mysql"))
	assert.Equal(t, "sqlite3", FamilyFromDriverName("sqlite"))
	assert.Equal(t, "mssql", FamilyFromDriverName("sqlserver"))
}

func TestFamilyFromDriverNamePassesThroughUnknownNames(t *testing.T) {
	assert.Equal(t, "oracle", FamilyFromDriverName("oracle"))
}

// TestBlankImportedDriversAreRegistered confirms the blank imports in
// drivers.go actually ran their init() registration, not just that the
// package compiles.
func TestBlankImportedDriversAreRegistered(t *testing.T) {
	drivers := sql.Drivers()
	for _, want := range []string{"postgres", "mysql", "sqlite"} {
		assert.Contains(t, drivers, want)
	}
}
