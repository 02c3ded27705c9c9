package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/repository"
	"github.com/MR-PROSTER/Expensync/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RAGService chunks documents, embeds the chunks and ranks them against a
// question. Ranking is an in-process cosine pass over the index's rows;
// ILIKE text search is the fallback when no embeddings are available.
type RAGService struct {
	knowledgeRepo *repository.KnowledgeRepository
	llmService    *LLMService
	config        *config.RAGConfig
	logger        *zap.Logger
}

func NewRAGService(knowledgeRepo *repository.KnowledgeRepository, llmService *LLMService, cfg *config.RAGConfig, logger *zap.Logger) *RAGService {
	return &RAGService{
		knowledgeRepo: knowledgeRepo,
		llmService:    llmService,
		config:        cfg,
		logger:        logger,
	}
}

// ChunkText splits text into overlapping windows sized by config.
func (s *RAGService) ChunkText(text string) []string {
	return ChunkText(text, s.config.ChunkSize, s.config.ChunkOverlap)
}

// ChunkText splits text into chunks of at most size runes with the given
// overlap between consecutive chunks.
func ChunkText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// IndexDocument chunks text, embeds each chunk and stores them under indexName.
func (s *RAGService) IndexDocument(ctx context.Context, indexName, documentID, text string, metadata string) (int, error) {
	chunks := s.ChunkText(text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no content to index")
	}

	embeddings, err := s.llmService.Embed(ctx, chunks)
	if err != nil {
		s.logger.Warn("Embedding failed, indexing chunks without vectors",
			zap.String("index", indexName),
			zap.Error(err),
		)
		embeddings = make([][]float32, len(chunks))
	}

	now := time.Now()
	records := make([]*models.KnowledgeChunk, len(chunks))
	for i, chunk := range chunks {
		records[i] = &models.KnowledgeChunk{
			ID:         uuid.New(),
			IndexName:  indexName,
			DocumentID: documentID,
			ChunkIndex: i,
			Content:    sanitizeUTF8(chunk),
			Embedding:  embeddings[i],
			Metadata:   metadata,
			CreatedAt:  now,
		}
	}

	if err := s.knowledgeRepo.CreateBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to store chunks: %w", err)
	}

	s.logger.Info("Document indexed",
		zap.String("index", indexName),
		zap.String("document_id", documentID),
		zap.Int("chunks", len(chunks)),
	)

	return len(chunks), nil
}

// Search returns the TopK chunks of the index most relevant to the question.
func (s *RAGService) Search(ctx context.Context, indexName, question string) ([]*models.KnowledgeChunk, error) {
	chunks, err := s.knowledgeRepo.ListByIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to load index %q: %w", indexName, err)
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	queryVec, err := s.embedQuery(ctx, question)
	if err != nil || len(queryVec) == 0 {
		s.logger.Warn("Query embedding unavailable, using text search", zap.Error(err))
		return s.knowledgeRepo.SimpleTextSearch(ctx, indexName, question, s.config.TopK)
	}

	ranked := RankBySimilarity(chunks, queryVec, s.config.TopK)
	if len(ranked) == 0 {
		return s.knowledgeRepo.SimpleTextSearch(ctx, indexName, question, s.config.TopK)
	}

	s.logger.Info("Knowledge search completed",
		zap.String("index", indexName),
		zap.Int("candidates", len(chunks)),
		zap.Int("results", len(ranked)),
	)

	return ranked, nil
}

func (s *RAGService) embedQuery(ctx context.Context, question string) ([]float32, error) {
	vecs, err := s.llmService.Embed(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return vecs[0], nil
}

// RankBySimilarity sorts chunks by cosine similarity to the query vector and
// returns the top k. Chunks without embeddings are skipped.
func RankBySimilarity(chunks []*models.KnowledgeChunk, query []float32, k int) []*models.KnowledgeChunk {
	type scored struct {
		chunk *models.KnowledgeChunk
		score float64
	}

	candidates := make([]scored, 0, len(chunks))
	for _, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, scored{chunk, CosineSimilarity(query, chunk.Embedding)})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if k <= 0 || k > len(candidates) {
		k = len(candidates)
	}

	result := make([]*models.KnowledgeChunk, k)
	for i := 0; i < k; i++ {
		result[i] = candidates[i].chunk
	}
	return result
}

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either vector is empty or zero-length.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// BuildContext builds a prompt context block from retrieved chunks.
func (s *RAGService) BuildContext(results []*models.KnowledgeChunk) string {
	if len(results) == 0 {
		return "No relevant information found in the knowledge base."
	}

	var builder strings.Builder
	builder.WriteString("Relevant excerpts from the document:\n\n")

	for i, result := range results {
		builder.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, result.Content))
	}

	return builder.String()
}
