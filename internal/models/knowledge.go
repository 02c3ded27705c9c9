package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeChunk is one embedded slice of a document or policy text,
// grouped into a named index. Per-document chat builds a fresh index;
// the seeded policy corpus lives under the "default" index.
type KnowledgeChunk struct {
	ID         uuid.UUID `db:"id"`
	IndexName  string    `db:"index_name"`
	DocumentID string    `db:"document_id"`
	ChunkIndex int       `db:"chunk_index"`
	Content    string    `db:"content"`
	Embedding  []float32 `db:"embedding"`
	Metadata   string    `db:"metadata"` // JSON with file type and provenance
	CreatedAt  time.Time `db:"created_at"`
}
