package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrIndexNotFound    = errors.New("index not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNoDocumentText   = errors.New("document has no extracted text")
)

// ChatService answers questions over an indexed document. Callers may name
// an existing index or pass a document id; in the latter case the index is
// built on first use. Indexes marked for deletion are purged immediately
// when possible, and again on shutdown for anything that slipped through.
type ChatService struct {
	documentRepo  *repository.DocumentRepository
	knowledgeRepo *repository.KnowledgeRepository
	ragService    *RAGService
	llmService    *LLMService
	logger        *zap.Logger

	mu     sync.Mutex
	marked map[string]struct{}
}

func NewChatService(
	documentRepo *repository.DocumentRepository,
	knowledgeRepo *repository.KnowledgeRepository,
	ragService *RAGService,
	llmService *LLMService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		documentRepo:  documentRepo,
		knowledgeRepo: knowledgeRepo,
		ragService:    ragService,
		llmService:    llmService,
		logger:        logger,
		marked:        make(map[string]struct{}),
	}
}

// Chat resolves the index, retrieves relevant chunks and generates an answer.
func (s *ChatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	indexName, err := s.resolveIndex(ctx, req)
	if err != nil {
		return nil, err
	}

	results, err := s.ragService.Search(ctx, indexName, req.Question)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	answer, err := s.llmService.Answer(ctx, req.Question, s.ragService.BuildContext(results))
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	s.logger.Info("Chat answered",
		zap.String("index", indexName),
		zap.Int("retrieved_chunks", len(results)),
	)

	return &dto.ChatResponse{
		Response:      answer,
		IndexNameUsed: indexName,
	}, nil
}

func (s *ChatService) resolveIndex(ctx context.Context, req *dto.ChatRequest) (string, error) {
	if req.IndexName != "" {
		exists, err := s.knowledgeRepo.IndexExists(ctx, req.IndexName)
		if err != nil {
			return "", fmt.Errorf("failed to check index: %w", err)
		}
		if exists {
			return req.IndexName, nil
		}
		if req.DocumentID == "" {
			return "", ErrIndexNotFound
		}
	}
	if req.DocumentID == "" {
		return "", fmt.Errorf("either index_name or document_id is required")
	}
	return s.buildDocumentIndex(ctx, req.DocumentID)
}

// buildDocumentIndex creates (or reuses) an index holding one document's text.
func (s *ChatService) buildDocumentIndex(ctx context.Context, documentID string) (string, error) {
	docID, err := uuid.Parse(documentID)
	if err != nil {
		return "", fmt.Errorf("invalid document id: %w", err)
	}

	indexName := "doc-" + docID.String()
	exists, err := s.knowledgeRepo.IndexExists(ctx, indexName)
	if err != nil {
		return "", fmt.Errorf("failed to check index: %w", err)
	}
	if exists {
		return indexName, nil
	}

	doc, err := s.documentRepo.GetByID(ctx, docID)
	if err != nil {
		return "", ErrDocumentNotFound
	}
	if doc.ExtractedText == "" {
		return "", ErrNoDocumentText
	}

	if _, err := s.ragService.IndexDocument(ctx, indexName, docID.String(), doc.ExtractedText, ""); err != nil {
		return "", fmt.Errorf("failed to build index: %w", err)
	}

	return indexName, nil
}

// MarkForDeletion deletes the index right away when possible. On failure the
// name is remembered and retried by CleanupMarked during shutdown.
func (s *ChatService) MarkForDeletion(ctx context.Context, indexName string) (bool, error) {
	deleted, err := s.knowledgeRepo.DeleteIndex(ctx, indexName)
	if err == nil {
		s.logger.Info("Index purged",
			zap.String("index", indexName),
			zap.Int64("chunks_removed", deleted),
		)
		return true, nil
	}

	s.mu.Lock()
	s.marked[indexName] = struct{}{}
	s.mu.Unlock()

	s.logger.Warn("Immediate index purge failed, deferred to shutdown",
		zap.String("index", indexName),
		zap.Error(err),
	)
	return false, nil
}

// CleanupMarked purges every index whose immediate deletion failed. Called
// on shutdown.
func (s *ChatService) CleanupMarked(ctx context.Context) {
	s.mu.Lock()
	names := make([]string, 0, len(s.marked))
	for name := range s.marked {
		names = append(names, name)
	}
	s.marked = make(map[string]struct{})
	s.mu.Unlock()

	for _, name := range names {
		if _, err := s.knowledgeRepo.DeleteIndex(ctx, name); err != nil {
			s.logger.Error("Failed to purge marked index",
				zap.String("index", name),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Marked index purged", zap.String("index", name))
	}
}
