package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultJoinTableNameOrdersAlphabetically(t *testing.T) {
	assert.Equal(t, "_PostsToTags", DefaultJoinTableName("Post", "Tag"))
	assert.Equal(t, "_PostsToTags", DefaultJoinTableName("Tag", "Post"))
}

func TestJoinTableOrDefaultPrefersExplicitName(t *testing.T) {
	rel := RelationField{JoinTable: "_CustomJoin"}
	assert.Equal(t, "_CustomJoin", rel.JoinTableOrDefault("Post", "Tag"))
}

func TestJoinTableOrDefaultFallsBackToDerivedName(t *testing.T) {
	rel := RelationField{}
	assert.Equal(t, "_PostsToTags", rel.JoinTableOrDefault("Post", "Tag"))
}
