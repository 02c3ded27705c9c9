package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService stores uploaded receipt files under the upload directory
// and records their sha256 so the hash anchored on the ledger can be
// re-derived from the bytes on disk.
type DocumentService struct {
	docRepo    *repository.DocumentRepository
	ocrService *OCRService
	uploadDir  string
	logger     *zap.Logger
}

func NewDocumentService(
	docRepo *repository.DocumentRepository,
	ocrService *OCRService,
	uploadDir string,
	logger *zap.Logger,
) *DocumentService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &DocumentService{
		docRepo:    docRepo,
		ocrService: ocrService,
		uploadDir:  uploadDir,
		logger:     logger,
	}
}

// UploadDocument saves the file, hashes it and creates the document record.
func (s *DocumentService) UploadDocument(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string, docType models.DocumentType) (*dto.DocumentResponse, error) {
	fileID := uuid.New()
	ext := filepath.Ext(fileName)
	newFileName := fileID.String() + ext
	filePath := filepath.Join(s.uploadDir, newFileName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	hasher := sha256.New()
	fileSize, err := io.Copy(io.MultiWriter(dst, hasher), file)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:          fileID,
		UserID:      userID,
		Type:        docType,
		FileName:    fileName,
		FileSize:    fileSize,
		FileURL:     "/uploads/" + newFileName,
		ContentHash: hex.EncodeToString(hasher.Sum(nil)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}

	s.logger.Info("Document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("file_name", fileName),
		zap.Int64("size", fileSize),
	)

	return documentResponse(doc), nil
}

// ExtractDocumentText runs the deterministic OCR pass over a stored document
// and persists the text so chat indexes can be built from it later.
func (s *DocumentService) ExtractDocumentText(ctx context.Context, userID, documentID uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("document not found: %w", err)
	}
	if doc.UserID != userID {
		return nil, fmt.Errorf("unauthorized")
	}

	if doc.ExtractedText == "" {
		text, err := s.ocrService.ExtractText(ctx, s.LocalPath(doc.FileURL))
		if err != nil {
			return nil, fmt.Errorf("text extraction failed: %w", err)
		}
		if err := s.docRepo.UpdateExtractedText(ctx, documentID, text); err != nil {
			s.logger.Warn("Failed to persist extracted text", zap.Error(err))
		}
		doc.ExtractedText = text
	}

	return documentResponse(doc), nil
}

// ListDocuments lists a user's documents.
func (s *DocumentService) ListDocuments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*dto.DocumentResponse, error) {
	docs, err := s.docRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = documentResponse(doc)
	}
	return responses, nil
}

// LocalPath maps a stored /uploads/ URL back to the path on disk.
func (s *DocumentService) LocalPath(fileURL string) string {
	return filepath.Join(s.uploadDir, filepath.Base(fileURL))
}

func documentResponse(doc *models.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:            doc.ID.String(),
		Type:          string(doc.Type),
		FileName:      doc.FileName,
		FileSize:      doc.FileSize,
		FileURL:       doc.FileURL,
		ContentHash:   doc.ContentHash,
		ExtractedText: doc.ExtractedText,
		CreatedAt:     doc.CreatedAt.Format(time.RFC3339),
	}
}
