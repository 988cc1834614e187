package querybuilder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxql"
	"github.com/syssam/veloxql/dialect"
	"github.com/syssam/veloxql/model"
)

func TestBuildCreateRecordMySQLMaterializesDefaultsCompanionQuery(t *testing.T) {
	ctx := newTestContext(dialect.MySQL)
	b := New(ctx)
	m := mysqlAutoIncrementModel()

	args := model.NewWriteArgs([]string{"label"}, map[string]any{"label": "widget-1"})
	cr, err := b.BuildCreateRecord(m, args)
	require.NoError(t, err)

	require.NotNil(t, cr.LastInsertIDField)
	assert.Equal(t, "id", cr.LastInsertIDField.Name)

	require.NotNil(t, cr.DefaultsQuery)
	require.Len(t, cr.DefaultsQuery.Placeholders, 1)
	assert.Equal(t, "id", cr.DefaultsQuery.Placeholders[0].Field)

	insertSQL := renderLiteralSQL(cr.Insert)
	assert.Contains(t, insertSQL, "INSERT INTO")
	assert.Contains(t, insertSQL, "`id`")
	assert.Contains(t, insertSQL, "`label`")
}

func TestBuildCreateRecordSkipsDefaultWhenCallerSuppliesValue(t *testing.T) {
	ctx := newTestContext(dialect.MySQL)
	b := New(ctx)
	m := mysqlAutoIncrementModel()

	args := model.NewWriteArgs([]string{"id", "label"}, map[string]any{"id": int64(7), "label": "widget-1"})
	cr, err := b.BuildCreateRecord(m, args)
	require.NoError(t, err)

	assert.Nil(t, cr.DefaultsQuery)
	require.Len(t, cr.MergeValues, 1)
	assert.Equal(t, int64(7), cr.MergeValues[0].Value)
}

func TestBuildCreateRecordNonMySQLNeverMaterializesDefaults(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	m := mysqlAutoIncrementModel()

	args := model.NewWriteArgs([]string{"label"}, map[string]any{"label": "widget-1"})
	cr, err := b.BuildCreateRecord(m, args)
	require.NoError(t, err)
	assert.Nil(t, cr.DefaultsQuery)
}

func writeArgsRow(id int) model.WriteArgs {
	return model.NewWriteArgs([]string{"id", "name"}, map[string]any{"id": id, "name": "u"})
}

func TestBuildInsertsChunksByMaxInsertRows(t *testing.T) {
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 2, 0)
	b := New(ctx)
	m := userModel()

	rows := []model.WriteArgs{writeArgsRow(1), writeArgsRow(2), writeArgsRow(3)}
	queries, err := b.BuildInserts(context.Background(), m, rows, false)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}

func TestBuildInsertsChunksByMaxBindValues(t *testing.T) {
	// 2 columns per row, bind limit of 5 -> at most 2 rows per batch.
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 0, 5)
	b := New(ctx)
	m := userModel()

	rows := []model.WriteArgs{writeArgsRow(1), writeArgsRow(2), writeArgsRow(3), writeArgsRow(4), writeArgsRow(5)}
	queries, err := b.BuildInserts(context.Background(), m, rows, false)
	require.NoError(t, err)
	assert.Len(t, queries, 3)
}

func TestBuildInsertsClampsMaxBindValuesAboveParameterLimit(t *testing.T) {
	// A connection reporting MaxBindValues above 2000 must still chunk at
	// the builder's PARAMETER_LIMIT, not the reported limit.
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 0, 5000)
	b := New(ctx)
	m := userModel()

	rows := make([]model.WriteArgs, 2500)
	for i := range rows {
		rows[i] = writeArgsRow(i + 1)
	}
	queries, err := b.BuildInserts(context.Background(), m, rows, false)
	require.NoError(t, err)
	// 2 columns/row, clamped bind limit of 2000 -> batches of 1000 rows.
	assert.Len(t, queries, 3)
}

func TestBuildInsertsSkipDuplicatesRendersOnConflict(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	m := userModel()

	queries, err := b.BuildInserts(context.Background(), m, []model.WriteArgs{writeArgsRow(1)}, true)
	require.NoError(t, err)
	require.Len(t, queries, 1)
	assert.Contains(t, renderLiteralSQL(queries[0]), "ON CONFLICT")
}

func TestBuildUpdateWithSelectionRendersReturning(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	m := userModel()

	args := model.NewWriteArgs([]string{"name"}, map[string]any{"name": "new"})
	filter := model.RecordFilter{Equals: []model.FieldEquals{{Field: "id", Value: 1}}}
	q, err := b.BuildUpdateWithSelection(m, filter, args, model.FieldSelection{Explicit: []string{"id"}})
	require.NoError(t, err)

	sql := renderLiteralSQL(q)
	assert.Contains(t, sql, "UPDATE")
	assert.Contains(t, sql, "SET")
	assert.Contains(t, sql, "RETURNING")
	assert.Contains(t, sql, `WHERE "id" = ?`)
}

func TestBuildUpdatesByIdentifiersChunksAndUsesInConditions(t *testing.T) {
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 0, 2)
	b := New(ctx)
	m := userModel()

	idRows := []model.SelectionResult{
		{{Field: "id", Value: 1}},
		{{Field: "id", Value: 2}},
		{{Field: "id", Value: 3}},
	}
	args := model.NewWriteArgs([]string{"name"}, map[string]any{"name": "bulk"})
	queries, err := b.BuildUpdatesByIdentifiers(context.Background(), m, []string{"id"}, idRows, args)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
	assert.Contains(t, renderLiteralSQL(queries[0]), "IN (")
}

func TestBuildUpdatesByIdentifiersClampsMaxBindValuesAboveParameterLimit(t *testing.T) {
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 0, 5000)
	b := New(ctx)
	m := userModel()

	idRows := make([]model.SelectionResult, 2500)
	for i := range idRows {
		idRows[i] = model.SelectionResult{{Field: "id", Value: i + 1}}
	}
	args := model.NewWriteArgs([]string{"name"}, map[string]any{"name": "bulk"})
	queries, err := b.BuildUpdatesByIdentifiers(context.Background(), m, []string{"id"}, idRows, args)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}

func TestBuildUpdatesByIdentifiersPlaceholderRowEmitsParametrizedEquality(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	m := userModel()

	idRows := []model.SelectionResult{{{Field: "id", Value: model.PlaceholderValue}}}
	args := model.NewWriteArgs([]string{"name"}, map[string]any{"name": "bulk"})
	queries, err := b.BuildUpdatesByIdentifiers(context.Background(), m, []string{"id"}, idRows, args)
	require.NoError(t, err)
	require.Len(t, queries, 1)

	sql := renderLiteralSQL(queries[0])
	assert.NotContains(t, sql, "IN (")
	assert.Contains(t, sql, `"id" = ?`)
}

func TestBuildUpsertRendersOnConflictDoUpdate(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	m := userModel()

	create := model.NewWriteArgs([]string{"id", "email"}, map[string]any{"id": 1, "email": "a@b.com"})
	update := model.NewWriteArgs([]string{"email"}, map[string]any{"email": "a@b.com"})
	q, err := b.BuildUpsert(m, []string{"email"}, create, update)
	require.NoError(t, err)

	sql := renderLiteralSQL(q)
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, "DO UPDATE SET")
}

func TestBuildUpsertRequiresUniqueFields(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	_, err := b.BuildUpsert(userModel(), nil, model.WriteArgs{}, model.WriteArgs{})
	require.Error(t, err)

	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.True(t, veloxql.IsConstraintError(be.Cause))
}

func TestBuildDeleteWithSelectionRendersReturning(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)
	m := userModel()

	filter := model.RecordFilter{Equals: []model.FieldEquals{{Field: "id", Value: 1}}}
	q, err := b.BuildDelete(m, filter, model.FieldSelection{Explicit: []string{"id"}})
	require.NoError(t, err)

	sql := renderLiteralSQL(q)
	assert.Contains(t, sql, "DELETE FROM")
	assert.Contains(t, sql, "RETURNING")
}

func TestBuildDeletesChunks(t *testing.T) {
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 0, 1)
	b := New(ctx)
	m := userModel()

	idRows := []model.SelectionResult{
		{{Field: "id", Value: 1}},
		{{Field: "id", Value: 2}},
	}
	queries, err := b.BuildDeletes(context.Background(), m, []string{"id"}, idRows)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}

func TestBuildDeletesClampsMaxBindValuesAboveParameterLimit(t *testing.T) {
	ctx := queryctxTestContextWithLimits(dialect.Postgres, 0, 5000)
	b := New(ctx)
	m := userModel()

	idRows := make([]model.SelectionResult, 2500)
	for i := range idRows {
		idRows[i] = model.SelectionResult{{Field: "id", Value: i + 1}}
	}
	queries, err := b.BuildDeletes(context.Background(), m, []string{"id"}, idRows)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}

func TestBuildRawPassesThroughUnchanged(t *testing.T) {
	ctx := newTestContext(dialect.Postgres)
	b := New(ctx)

	q := b.BuildRaw("SELECT 1", []any{})
	assert.Equal(t, KindRawSQL, q.Kind)
	assert.True(t, strings.HasPrefix(q.SQL, "SELECT 1"))
	assert.Contains(t, q.SQL, "traceparent")
}

func TestQualifiedTableNameFallsBackToNoSchemaWhenOriginAbsentFromRemap(t *testing.T) {
	ds := queryctxDynamicSchema(t, `{"tenant_b":"schema_b"}`)
	ctx := queryctxTestContextWithDynamicSchema(dialect.Postgres, ds)
	b := New(ctx)
	m := tenantModel() // declares OriginSchema "tenant_a", absent from the remap

	args := model.NewWriteArgs([]string{"total"}, map[string]any{"total": 10})
	queries, err := b.BuildInserts(context.Background(), m, []model.WriteArgs{args}, false)
	require.NoError(t, err)
	require.Len(t, queries, 1)

	sql := renderLiteralSQL(queries[0])
	assert.Contains(t, sql, `INSERT INTO "orders"`)
	assert.NotContains(t, sql, "tenant_a")
}
