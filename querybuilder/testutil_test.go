package querybuilder

import (
	"testing"

	"github.com/syssam/veloxql/model"
	"github.com/syssam/veloxql/queryctx"
)

func newTestContext(family string) *queryctx.Context {
	return queryctx.New(queryctx.ConnectionInfo{Family: family, SchemaName: "public"})
}

func queryctxTestContextWithLimits(family string, maxInsertRows, maxBindValues int) *queryctx.Context {
	return queryctx.New(queryctx.ConnectionInfo{
		Family:        family,
		SchemaName:    "public",
		MaxInsertRows: maxInsertRows,
		MaxBindValues: maxBindValues,
	})
}

func queryctxDynamicSchema(t *testing.T, jsonStr string) queryctx.DynamicSchema {
	t.Helper()
	return queryctx.ParseDynamicSchema(jsonStr)
}

func queryctxTestContextWithDynamicSchema(family string, ds queryctx.DynamicSchema) *queryctx.Context {
	return queryctx.NewWithDynamicSchema(queryctx.ConnectionInfo{Family: family, SchemaName: "public"}, ds, "")
}

func userModel() *model.Model {
	return &model.Model{
		Name:   "User",
		DBName: "users",
		Columns: []model.Column{
			{Name: "id", DBName: "id"},
			{Name: "email", DBName: "email"},
			{Name: "name", DBName: "name"},
		},
		PrimaryIdentifier: []string{"id"},
		UniqueIndexes: []model.UniqueIndex{
			{Name: "users_pkey", Columns: []string{"id"}},
			{Name: "users_email_key", Columns: []string{"email"}},
		},
	}
}

// mysqlAutoIncrementModel mirrors a table whose primary key is both
// auto-increment and schema-defaulted, the shape BuildCreateRecord's MySQL
// defaults pipeline exercises.
func mysqlAutoIncrementModel() *model.Model {
	return &model.Model{
		Name:   "Widget",
		DBName: "widgets",
		Columns: []model.Column{
			{Name: "id", DBName: "id", IsAutoIncrement: true, Default: "AUTO_INCREMENT"},
			{Name: "label", DBName: "label"},
		},
		PrimaryIdentifier: []string{"id"},
	}
}

func tenantModel() *model.Model {
	return &model.Model{
		Name:         "Order",
		DBName:       "orders",
		OriginSchema: "tenant_a",
		Columns: []model.Column{
			{Name: "id", DBName: "id"},
			{Name: "total", DBName: "total"},
		},
		PrimaryIdentifier: []string{"id"},
	}
}
