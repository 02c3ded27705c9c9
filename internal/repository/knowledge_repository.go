package repository

import (
	"context"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var knowledgeColumns = []string{
	"id", "index_name", "document_id", "chunk_index", "content",
	"embedding", "metadata", "created_at",
}

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) CreateBatch(ctx context.Context, chunks []*models.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	builder := squirrel.Insert("knowledge_chunks").
		Columns(knowledgeColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, chunk := range chunks {
		embedding := pgtype.FlatArray[float32](chunk.Embedding)
		builder = builder.Values(chunk.ID, chunk.IndexName, chunk.DocumentID, chunk.ChunkIndex,
			chunk.Content, embedding, chunk.Metadata, chunk.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByIndex returns every chunk of an index with its embedding. Similarity
// ranking happens in-process, so candidate sets stay bounded per index.
func (r *KnowledgeRepository) ListByIndex(ctx context.Context, indexName string) ([]*models.KnowledgeChunk, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_chunks").
		Where(squirrel.Eq{"index_name": indexName}).
		OrderBy("chunk_index ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

// SimpleTextSearch is the fallback when no query embedding is available.
func (r *KnowledgeRepository) SimpleTextSearch(ctx context.Context, indexName, queryText string, topK int) ([]*models.KnowledgeChunk, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_chunks").
		Where(squirrel.Eq{"index_name": indexName}).
		Where(squirrel.ILike{"content": "%" + queryText + "%"}).
		Limit(uint64(topK)).
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *KnowledgeRepository) IndexExists(ctx context.Context, indexName string) (bool, error) {
	query := squirrel.Select("COUNT(1)").
		From("knowledge_chunks").
		Where(squirrel.Eq{"index_name": indexName}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *KnowledgeRepository) DeleteIndex(ctx context.Context, indexName string) (int64, error) {
	query := squirrel.Delete("knowledge_chunks").
		Where(squirrel.Eq{"index_name": indexName}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *KnowledgeRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.KnowledgeChunk, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*models.KnowledgeChunk
	for rows.Next() {
		var chunk models.KnowledgeChunk
		var embedding pgtype.FlatArray[float32]

		if err := rows.Scan(
			&chunk.ID, &chunk.IndexName, &chunk.DocumentID, &chunk.ChunkIndex,
			&chunk.Content, &embedding, &chunk.Metadata, &chunk.CreatedAt,
		); err != nil {
			return nil, err
		}

		chunk.Embedding = []float32(embedding)
		chunks = append(chunks, &chunk)
	}

	return chunks, rows.Err()
}
