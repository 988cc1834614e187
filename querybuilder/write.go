package querybuilder

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/veloxql"
	"github.com/syssam/veloxql/dialect"
	"github.com/syssam/veloxql/dialect/sql"
	"github.com/syssam/veloxql/model"
)

// identityColumn qualifies a field as itself: UPDATE/DELETE/INSERT target
// their own table directly, with no alias, so filters against them use the
// bare column name rather than a SELECT's alias-qualified form.
func identityColumn(f string) string { return f }

// FieldPlaceholder names one defaulted primary-identifier column and the
// named placeholder its insert args were rewritten to carry.
type FieldPlaceholder struct {
	Field       string
	Placeholder sql.Placeholder
}

// CreateRecordDefaultsQuery is the companion SELECT that materializes a
// MySQL table's primary-identifier defaults before the insert that needs
// them (§4.3.3).
type CreateRecordDefaultsQuery struct {
	Query        DbQuery
	Placeholders []FieldPlaceholder
}

// CreateRecord is build_create_record's result: the insert itself, the
// optional MySQL defaults companion query, the auto-increment field to
// merge LAST_INSERT_ID into, and any primary-identifier values the caller
// already supplied.
type CreateRecord struct {
	DefaultsQuery     *CreateRecordDefaultsQuery
	Insert            DbQuery
	LastInsertIDField *model.Column
	MergeValues       []model.FieldValue
}

// BuildCreateRecord implements §4.3.3's single-row insert policy. On MySQL,
// primary-identifier columns carrying a schema default are rewritten into
// named placeholders and a companion SELECT is emitted to materialize them
// ahead of the insert; the auto-increment column (if any) is recorded so
// the interpreter can merge LAST_INSERT_ID back into the result.
func (b *SqlQueryBuilder) BuildCreateRecord(m *model.Model, args model.WriteArgs) (CreateRecord, error) {
	var cr CreateRecord

	if col, ok := m.AutoIncrementColumn(); ok {
		c := col
		cr.LastInsertIDField = &c
	}
	for _, col := range m.PrimaryColumns() {
		if v, ok := args.Get(col.Name); ok {
			cr.MergeValues = append(cr.MergeValues, model.FieldValue{Field: col.Name, Value: v})
		}
	}

	if b.ctx.Dialect() == dialect.MySQL {
		defaulted := m.DefaultedPrimaryColumns()
		var placeholders []FieldPlaceholder
		for _, col := range defaulted {
			if _, ok := args.Get(col.Name); ok {
				continue // caller already supplied a value; the default is moot
			}
			ph := sql.NewPlaceholder(col.Name)
			placeholders = append(placeholders, FieldPlaceholder{Field: col.Name, Placeholder: ph})
			args.Set(col.Name, ph)
		}
		if len(placeholders) > 0 {
			t := qualifiedTable(b.ctx, m)
			cols := make([]string, len(placeholders))
			for i, p := range placeholders {
				cols[i] = t.C(p.Field)
			}
			sel := sql.Dialect(b.ctx.Dialect()).Select(cols...).From(t)
			cr.DefaultsQuery = &CreateRecordDefaultsQuery{
				Query:        b.convertQuery(sel),
				Placeholders: placeholders,
			}
		}
	}

	cr.Insert = b.buildInsertStatement(m, []model.WriteArgs{args}, false)
	return cr, nil
}

// BuildInserts implements §4.3.3's bulk-insert path: rows are chunked so
// that row count per batch stays within MaxInsertRows and bind parameter
// count per batch stays within MaxBindValues, then each batch's statement
// is rendered concurrently via errgroup (Context's alias counter is atomic
// specifically to make this safe, §5).
func (b *SqlQueryBuilder) BuildInserts(ctx context.Context, m *model.Model, rows []model.WriteArgs, skipDuplicates bool) ([]DbQuery, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	batches := b.insertBatches(rows)
	queries := make([]DbQuery, len(batches))
	g, _ := errgroup.WithContext(ctx)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			queries[i] = b.buildInsertStatement(m, batch, skipDuplicates)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return queries, nil
}

func (b *SqlQueryBuilder) insertBatches(rows []model.WriteArgs) [][]model.WriteArgs {
	numCols := len(unionColumns(rows))
	if numCols == 0 {
		numCols = 1
	}
	batchSize := b.ctx.MaxInsertRows()
	if batchSize <= 0 {
		batchSize = len(rows)
	}
	if maxBind := b.ctx.MaxBindValues(); maxBind > 0 {
		if byBind := maxBind / numCols; byBind > 0 && byBind < batchSize {
			batchSize = byBind
		}
	}
	if batchSize <= 0 {
		batchSize = 1
	}

	var batches [][]model.WriteArgs
	for len(rows) > 0 {
		n := batchSize
		if n > len(rows) {
			n = len(rows)
		}
		batches = append(batches, rows[:n:n])
		rows = rows[n:]
	}
	return batches
}

func unionColumns(rows []model.WriteArgs) []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range rows {
		for _, f := range row.Fields() {
			if !seen[f] {
				seen[f] = true
				cols = append(cols, f)
			}
		}
	}
	return cols
}

func (b *SqlQueryBuilder) buildInsertStatement(m *model.Model, rows []model.WriteArgs, skipDuplicates bool) DbQuery {
	table := qualifiedTableName(b.ctx, m)
	ib := sql.Dialect(b.ctx.Dialect()).Insert(table)

	if len(rows) == 1 && rows[0].Len() == 0 {
		ib = ib.Default()
	} else {
		cols := unionColumns(rows)
		ib = ib.Columns(cols...)
		for _, row := range rows {
			vals := make([]any, len(cols))
			for i, c := range cols {
				v, _ := row.Get(c)
				vals[i] = v
			}
			ib = ib.Values(vals...)
		}
	}

	if skipDuplicates {
		ib = ib.OnConflictDoNothing(m.PrimaryIdentifier...)
	}
	return b.convertQuery(ib)
}

// BuildUpdateWithSelection implements the with-selection update shape
// (§4.3.4): one UPDATE ... RETURNING statement projecting sel.
func (b *SqlQueryBuilder) BuildUpdateWithSelection(m *model.Model, filter model.RecordFilter, args model.WriteArgs, sel model.FieldSelection) (DbQuery, error) {
	table := qualifiedTableName(b.ctx, m)
	ub := sql.Dialect(b.ctx.Dialect()).Update(table)
	for _, f := range args.Fields() {
		v, _ := args.Get(f)
		ub = ub.Set(f, v)
	}
	if p := buildFilter(identityColumn, filter); p != nil {
		ub = ub.Where(p)
	}
	if cols := sel.All(); len(cols) > 0 {
		ub = ub.Returning(cols...)
	}
	return b.convertQuery(ub), nil
}

// BuildUpdatesByIdentifiers implements the without-selection update shape
// (§4.3.4): given the primary-identifier rows already read by filter (the
// caller's job, not the builder's), chunk them and issue one update per
// chunk, each keyed by InConditions.
func (b *SqlQueryBuilder) BuildUpdatesByIdentifiers(ctx context.Context, m *model.Model, idFields []string, idRows []model.SelectionResult, args model.WriteArgs) ([]DbQuery, error) {
	chunks := ChunkSelectionResults(idRows, b.ctx.MaxBindValues())
	table := qualifiedTableName(b.ctx, m)
	queries := make([]DbQuery, len(chunks))
	g, _ := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			ub := sql.Dialect(b.ctx.Dialect()).Update(table)
			for _, f := range args.Fields() {
				v, _ := args.Get(f)
				ub = ub.Set(f, v)
			}
			ub = ub.Where(InConditions(identityColumn, idFields, chunk))
			queries[i] = b.convertQuery(ub)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return queries, nil
}

// BuildUpsert implements §4.3.4's native upsert: an INSERT whose ON
// CONFLICT target is uniqueFields, updating to the update args on conflict.
func (b *SqlQueryBuilder) BuildUpsert(m *model.Model, uniqueFields []string, create, update model.WriteArgs) (DbQuery, error) {
	if len(uniqueFields) == 0 {
		cause := veloxql.NewConstraintError("upsert conflict target", nil)
		return DbQuery{}, &BuildError{Msg: "upsert requires at least one unique constraint field", Cause: cause}
	}

	table := qualifiedTableName(b.ctx, m)
	cols := create.Fields()
	vals := make([]any, len(cols))
	for i, c := range cols {
		v, _ := create.Get(c)
		vals[i] = v
	}
	ib := sql.Dialect(b.ctx.Dialect()).Insert(table).Columns(cols...).Values(vals...)

	updateSet := make(map[string]any, update.Len())
	for _, f := range update.Fields() {
		v, _ := update.Get(f)
		updateSet[f] = v
	}
	ib = ib.OnConflictDoUpdate(uniqueFields, updateSet)
	return b.convertQuery(ib), nil
}

// BuildDelete implements the with-selection delete shape (§4.3.4):
// delete_returning, projecting sel.
func (b *SqlQueryBuilder) BuildDelete(m *model.Model, filter model.RecordFilter, sel model.FieldSelection) (DbQuery, error) {
	table := qualifiedTableName(b.ctx, m)
	db := sql.Dialect(b.ctx.Dialect()).Delete(table)
	if p := buildFilter(identityColumn, filter); p != nil {
		db = db.Where(p)
	}
	if cols := sel.All(); len(cols) > 0 {
		db = db.Returning(cols...)
	}
	return b.convertQuery(db), nil
}

// BuildDeletes implements the without-selection delete shape: chunked
// delete statements keyed by InConditions over the already-read identifier
// rows, mirroring BuildUpdatesByIdentifiers.
func (b *SqlQueryBuilder) BuildDeletes(ctx context.Context, m *model.Model, idFields []string, idRows []model.SelectionResult) ([]DbQuery, error) {
	chunks := ChunkSelectionResults(idRows, b.ctx.MaxBindValues())
	table := qualifiedTableName(b.ctx, m)
	queries := make([]DbQuery, len(chunks))
	g, _ := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			db := sql.Dialect(b.ctx.Dialect()).Delete(table)
			db = db.Where(InConditions(identityColumn, idFields, chunk))
			queries[i] = b.convertQuery(db)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return queries, nil
}

// BuildRaw passes sqlText/params through unchanged apart from the trailing
// traceparent comment withTrace appends when the context carries one
// (§4.3's build_raw).
func (b *SqlQueryBuilder) BuildRaw(sqlText string, params []any) DbQuery {
	return b.withTrace(RawSQL(sqlText, params))
}
