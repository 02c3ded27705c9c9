package service

import (
	"strings"
	"testing"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	t.Run("short text single chunk", func(t *testing.T) {
		chunks := ChunkText("hello world", 500, 100)
		require.Len(t, chunks, 1)
		assert.Equal(t, "hello world", chunks[0])
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Nil(t, ChunkText("   ", 500, 100))
	})

	t.Run("chunks respect size and overlap", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 120) // 1200 chars
		chunks := ChunkText(text, 500, 100)

		require.Len(t, chunks, 3)
		assert.LessOrEqual(t, len(chunks[0]), 500)
		// consecutive chunks share the overlap region
		assert.Equal(t, chunks[0][400:], chunks[1][:100])
	})

	t.Run("invalid overlap falls back to no overlap", func(t *testing.T) {
		text := strings.Repeat("x", 1000)
		chunks := ChunkText(text, 500, 500)
		assert.Len(t, chunks, 2)
	})
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "empty", a: nil, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRankBySimilarity(t *testing.T) {
	chunks := []*models.KnowledgeChunk{
		{Content: "far", Embedding: []float32{0, 1}},
		{Content: "close", Embedding: []float32{1, 0.1}},
		{Content: "exact", Embedding: []float32{1, 0}},
		{Content: "no embedding"},
	}

	ranked := RankBySimilarity(chunks, []float32{1, 0}, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "exact", ranked[0].Content)
	assert.Equal(t, "close", ranked[1].Content)
}

func TestRankBySimilarityKLargerThanCandidates(t *testing.T) {
	chunks := []*models.KnowledgeChunk{
		{Content: "a", Embedding: []float32{1, 0}},
	}

	ranked := RankBySimilarity(chunks, []float32{1, 0}, 5)
	assert.Len(t, ranked, 1)
}
