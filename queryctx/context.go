// Package queryctx carries the per-compilation state the expression
// compiler and SQL query builder need but that doesn't belong on any
// single node: the target connection's dialect and limits, the alias
// counter that keeps generated table/join names unique within one
// statement tree, the optional dynamic schema remap, and trace
// propagation metadata.
package queryctx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/syssam/veloxql/dialect"
)

// ConnectionInfo describes the target connection's dialect and the limits
// that bound the query builder's output (how many rows a single INSERT can
// carry, how many bind parameters a single statement can carry).
type ConnectionInfo struct {
	Family        string // one of the dialect.* family constants
	SchemaName    string
	MaxInsertRows int // 0 means unlimited
	MaxBindValues int // 0 means not reported; see MaxBindValuesOrDefault
}

// defaultMaxBindValues is the builder's PARAMETER_LIMIT: the hard ceiling
// on bind values per chunk, taken regardless of what a connection reports.
// A connection that reports no limit falls back to it; a connection that
// reports a higher limit is still clamped down to it, since the builder
// chunks at PARAMETER_LIMIT = 2000 regardless, taking the min of it and
// whatever the connection allows.
const defaultMaxBindValues = 2000

// MaxBindValuesOrDefault returns min(ci.MaxBindValues, PARAMETER_LIMIT),
// or PARAMETER_LIMIT outright when the connection didn't report a limit.
// PARAMETER_LIMIT is always the ceiling: a connection that reports a
// higher MaxBindValues never raises the builder's chunk size past it.
func (ci ConnectionInfo) MaxBindValuesOrDefault() int {
	if ci.MaxBindValues <= 0 {
		return defaultMaxBindValues
	}
	if ci.MaxBindValues > defaultMaxBindValues {
		return defaultMaxBindValues
	}
	return ci.MaxBindValues
}

// VersionExpr returns the SQL used to query the engine/server version for
// this connection's dialect, used only by schema-introspection callers.
func (ci ConnectionInfo) VersionExpr() string {
	return dialect.VersionExpr(ci.Family)
}

// Context is the compilation-scoped state threaded through every stage of
// translating a query graph into dialect SQL. It is built once per request
// and shared (read-mostly, alias counter aside) across the whole expression
// tree, including the goroutines that chunked write operations use to
// render their per-chunk statements concurrently via
// golang.org/x/sync/errgroup; the alias counter is an atomic so that
// aliases issued from any of them stay unique.
type Context struct {
	connInfo      ConnectionInfo
	dynamicSchema DynamicSchema
	traceParent   string
	aliasCounter  atomic.Uint64
}

// New returns a Context for connInfo with no dynamic schema remap and a
// freshly generated traceparent.
func New(connInfo ConnectionInfo) *Context {
	return NewWithDynamicSchema(connInfo, DynamicSchema{}, "")
}

// NewWithDynamicSchema returns a Context carrying an explicit dynamic
// schema remap. traceParent may be empty, in which case one is generated.
func NewWithDynamicSchema(connInfo ConnectionInfo, ds DynamicSchema, traceParent string) *Context {
	if traceParent == "" {
		traceParent = uuid.NewString()
	}
	return &Context{connInfo: connInfo, dynamicSchema: ds, traceParent: traceParent}
}

// ConnectionInfo returns the connection this context was built for.
func (c *Context) ConnectionInfo() ConnectionInfo { return c.connInfo }

// Dialect returns the target dialect family.
func (c *Context) Dialect() string { return c.connInfo.Family }

// SchemaName returns the connection's default schema/namespace.
func (c *Context) SchemaName() string { return c.connInfo.SchemaName }

// TraceParent returns the trace id threaded through to rendered SQL
// comments.
func (c *Context) TraceParent() string { return c.traceParent }

// MaxInsertRows returns the connection's row-per-insert limit, or 0 for
// unlimited.
func (c *Context) MaxInsertRows() int { return c.connInfo.MaxInsertRows }

// MaxBindValues returns the connection's bind-parameter limit, falling
// back to the builder's conservative default when the connection didn't
// report one.
func (c *Context) MaxBindValues() int { return c.connInfo.MaxBindValuesOrDefault() }

// NextTableAlias returns the next globally-unique table alias for this
// compilation ("t0", "t1", ...).
func (c *Context) NextTableAlias() string {
	return fmt.Sprintf("t%d", c.aliasCounter.Add(1)-1)
}

// NextJoinAlias returns the next globally-unique join alias for this
// compilation ("j0", "j1", ...). Table and join aliases share one counter
// so they never collide within a single statement tree.
func (c *Context) NextJoinAlias() string {
	return fmt.Sprintf("j%d", c.aliasCounter.Add(1)-1)
}

// TargetSchema resolves originSchema through the dynamic schema remap.
// With no remap configured at all, originSchema passes through unchanged.
// With a remap configured, an origin absent from it resolves to no schema
// (ok is false): the query builder then emits the table with no schema
// qualifier (the connection's SchemaName is not substituted), rather than
// silently keeping the origin.
func (c *Context) TargetSchema(originSchema string) (target string, ok bool) {
	if c.dynamicSchema.IsEmpty() {
		return originSchema, true
	}
	return c.dynamicSchema.Lookup(originSchema)
}

// DynamicSchema is an origin-schema -> target-schema remap, parsed from an
// optional JSON object string. Malformed JSON degrades to an empty map
// (identity remap) rather than failing the compilation: a caller that sent
// a dynamic schema string at all almost always wants best-effort behavior
// over a hard failure, and the consequence of an empty map (tables resolve
// to their original schema) is safe.
type DynamicSchema map[string]string

// ParseDynamicSchema parses s (a JSON object of string->string) into a
// DynamicSchema. An empty string, or JSON that fails to parse as an object
// of strings, yields an empty (identity) DynamicSchema; the failure is
// logged, not returned, matching the Rust source's
// `serde_json::from_str(..).unwrap_or_default()` fallback.
func ParseDynamicSchema(s string) DynamicSchema {
	if s == "" {
		return DynamicSchema{}
	}
	var ds DynamicSchema
	if err := json.Unmarshal([]byte(s), &ds); err != nil {
		slog.Warn("queryctx: malformed dynamic schema, falling back to identity mapping", "error", err)
		return DynamicSchema{}
	}
	return ds
}

// Lookup returns the target schema mapped from originSchema, if any.
func (ds DynamicSchema) Lookup(originSchema string) (string, bool) {
	if len(ds) == 0 {
		return "", false
	}
	target, ok := ds[originSchema]
	return target, ok
}

// IsEmpty reports whether the schema remap has no entries.
func (ds DynamicSchema) IsEmpty() bool { return len(ds) == 0 }
