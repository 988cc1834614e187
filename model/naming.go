package model

import "github.com/go-openapi/inflect"

// DefaultJoinTableName derives the implicit many-to-many join table name
// for a relation that declares no explicit join table: the two model names,
// pluralized and ordered alphabetically, joined by "To" behind a leading
// underscore (e.g. "Post"/"Tag" -> "_PostsToTags").
func DefaultJoinTableName(parentModel, childModel string) string {
	a, b := inflect.Pluralize(parentModel), inflect.Pluralize(childModel)
	if b < a {
		a, b = b, a
	}
	return "_" + a + "To" + b
}

// JoinTableOrDefault returns rel's explicit JoinTable, or the derived
// default for parentModel/childModel if none was set.
func (rel RelationField) JoinTableOrDefault(parentModel, childModel string) string {
	if rel.JoinTable != "" {
		return rel.JoinTable
	}
	return DefaultJoinTableName(parentModel, childModel)
}
