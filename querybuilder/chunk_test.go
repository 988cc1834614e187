package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/veloxql/model"
)

func selectionRows(n int) []model.SelectionResult {
	rows := make([]model.SelectionResult, n)
	for i := range rows {
		rows[i] = model.SelectionResult{{Field: "id", Value: i + 1}}
	}
	return rows
}

func TestChunkSelectionResultsSplitsAtLimit(t *testing.T) {
	chunks := ChunkSelectionResults(selectionRows(5), 2)
	assert.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[1], 2)
	assert.Len(t, chunks[2], 1)
}

func TestChunkSelectionResultsFallsBackToParameterLimitWhenNonPositive(t *testing.T) {
	chunks := ChunkSelectionResults(selectionRows(1), 0)
	assert.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 1)
}

func TestChunkSelectionResultsClampsAboveParameterLimit(t *testing.T) {
	chunks := ChunkSelectionResults(selectionRows(2500), 5000)
	assert.Len(t, chunks, 2)
	assert.Len(t, chunks[0], ParameterLimit)
	assert.Len(t, chunks[1], 500)
}
