package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/notify"
	"github.com/MR-PROSTER/Expensync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const anchorTimeout = 2 * time.Minute

// tripLookup resolves a trip reference before an expense is attached to it.
type tripLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error)
}

// ExpenseService owns the expense lifecycle: creation (manual or from a
// parsed receipt), asynchronous pinning and ledger anchoring, and the
// one-way pending to approved/rejected transition. Expenses are never
// deleted.
type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
	tripRepo    tripLookup
	docService  *DocumentService
	ocrService  *OCRService
	pinner      *PinnerService
	ledger      *LedgerService
	publisher   notify.Publisher
	logger      *zap.Logger
}

func NewExpenseService(
	expenseRepo *repository.ExpenseRepository,
	tripRepo tripLookup,
	docService *DocumentService,
	ocrService *OCRService,
	pinner *PinnerService,
	ledger *LedgerService,
	publisher notify.Publisher,
	logger *zap.Logger,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		tripRepo:    tripRepo,
		docService:  docService,
		ocrService:  ocrService,
		pinner:      pinner,
		ledger:      ledger,
		publisher:   publisher,
		logger:      logger,
	}
}

// CreateExpense records a manually entered expense as pending and kicks off
// anchoring in the background.
func (s *ExpenseService) CreateExpense(ctx context.Context, userID uuid.UUID, req *dto.CreateExpenseRequest) (*dto.CreateExpenseResponse, error) {
	tripID := uuid.Nil
	if req.TripID != "" {
		parsed, err := uuid.Parse(req.TripID)
		if err != nil {
			return nil, fmt.Errorf("invalid trip id: %w", err)
		}
		if _, err := s.tripRepo.GetByID(ctx, parsed); err != nil {
			return nil, fmt.Errorf("trip not found: %w", err)
		}
		tripID = parsed
	}

	now := time.Now()
	expense := &models.Expense{
		ID:              uuid.New(),
		UserID:          userID,
		TripID:          tripID,
		VendorName:      req.VendorName,
		Category:        ParseCategory(req.Category),
		Description:     req.Description,
		Amount:          req.Amount,
		Currency:        req.Currency,
		TaxAmount:       req.TaxAmount,
		PaymentMethod:   req.PaymentMethod,
		TransactionDate: parseDateOr(req.TransactionDate, now),
		DocumentURL:     req.DocumentURL,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.publishEvent(notify.EventExpenseCreated, expense)
	s.anchorAsync(expense)

	s.logger.Info("Expense created",
		zap.String("expense_id", expense.ID.String()),
		zap.String("vendor", expense.VendorName),
		zap.Float64("amount", expense.Amount),
	)

	return &dto.CreateExpenseResponse{
		ExpenseID: expense.ID.String(),
		Status:    string(expense.Status),
	}, nil
}

// CreateFromReceipt runs the dual OCR pass over a stored receipt, builds a
// pending expense from the merged fields and anchors it.
func (s *ExpenseService) CreateFromReceipt(ctx context.Context, userID uuid.UUID, req *dto.OCRRequest) (*dto.OCRResponse, error) {
	tripID := uuid.Nil
	if req.TripID != "" {
		parsed, err := uuid.Parse(req.TripID)
		if err != nil {
			return nil, fmt.Errorf("invalid trip id: %w", err)
		}
		if _, err := s.tripRepo.GetByID(ctx, parsed); err != nil {
			return nil, fmt.Errorf("trip not found: %w", err)
		}
		tripID = parsed
	}

	localPath := ""
	if strings.HasPrefix(req.FileURL, "/uploads/") {
		localPath = s.docService.LocalPath(req.FileURL)
	}

	data, summary, _, err := s.ocrService.Parse(ctx, req.FileURL, localPath)
	if err != nil {
		return nil, fmt.Errorf("receipt parsing failed: %w", err)
	}

	extractedJSON, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expense := &models.Expense{
		ID:              uuid.New(),
		UserID:          userID,
		TripID:          tripID,
		VendorName:      data.VendorName,
		Category:        ParseCategory(data.Category),
		Description:     data.Description,
		Amount:          data.Amount,
		Currency:        data.Currency,
		TaxAmount:       data.TaxAmount,
		PaymentMethod:   data.PaymentMethod,
		TransactionDate: parseDateOr(data.Date, now),
		DocumentURL:     req.FileURL,
		Status:          models.StatusPending,
		ExtractedData:   string(extractedJSON),
		Summary:         summary,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.publishEvent(notify.EventExpenseCreated, expense)
	s.anchorAsync(expense)

	s.logger.Info("Expense created from receipt",
		zap.String("expense_id", expense.ID.String()),
		zap.String("vendor", expense.VendorName),
	)

	return &dto.OCRResponse{
		Message:       "Receipt processed successfully",
		ExpenseID:     expense.ID.String(),
		ExtractedData: data,
		Summary:       summary,
		DocumentURL:   req.FileURL,
		StoredAt:      now.Format(time.RFC3339),
	}, nil
}

// SetStatus applies the approve/reject decision. The transition is checked
// in memory and again in SQL, so a stale read cannot flip a terminal status.
func (s *ExpenseService) SetStatus(ctx context.Context, expenseID uuid.UUID, status models.ExpenseStatus) (*dto.ExpenseResponse, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("expense not found: %w", err)
	}

	if err := expense.Transition(status); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.UpdateStatus(ctx, expenseID, status); err != nil {
		return nil, err
	}

	eventType := notify.EventExpenseApproved
	if status == models.StatusRejected {
		eventType = notify.EventExpenseRejected
	}
	s.publishEvent(eventType, expense)

	s.logger.Info("Expense status updated",
		zap.String("expense_id", expenseID.String()),
		zap.String("status", string(status)),
	)

	return expenseResponse(expense), nil
}

// GetExpense returns one expense; non-admins only see their own.
func (s *ExpenseService) GetExpense(ctx context.Context, userID uuid.UUID, role string, expenseID uuid.UUID) (*dto.ExpenseResponse, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("expense not found: %w", err)
	}
	if role != string(models.RoleAdmin) && expense.UserID != userID {
		return nil, fmt.Errorf("unauthorized")
	}
	return expenseResponse(expense), nil
}

// ListExpenses pages through expenses; admins see everyone's.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID uuid.UUID, role string, limit, offset int) ([]*dto.ExpenseResponse, error) {
	var expenses []*models.Expense
	var err error

	if role == string(models.RoleAdmin) {
		expenses, err = s.expenseRepo.ListAll(ctx, limit, offset)
	} else {
		expenses, err = s.expenseRepo.ListByUserID(ctx, userID, limit, offset)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = expenseResponse(e)
	}
	return responses, nil
}

// anchorAsync pins the receipt file and anchors its hash in the background.
// Failures are logged; the expense stays valid without anchors.
func (s *ExpenseService) anchorAsync(expense *models.Expense) {
	if expense.DocumentURL == "" || (!s.pinner.Enabled() && !s.ledger.Enabled()) {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), anchorTimeout)
		defer cancel()

		localPath := s.docService.LocalPath(expense.DocumentURL)

		var cid string
		if s.pinner.Enabled() {
			pinned, err := s.pinner.Pin(ctx, localPath)
			if err != nil {
				s.logger.Warn("Receipt pinning failed",
					zap.String("expense_id", expense.ID.String()),
					zap.Error(err),
				)
			} else {
				cid = pinned
			}
		}

		var txHash string
		if s.ledger.Enabled() {
			hash, err := fileSHA256(localPath)
			if err != nil {
				s.logger.Warn("Receipt hashing failed",
					zap.String("expense_id", expense.ID.String()),
					zap.Error(err),
				)
			} else if anchored, err := s.ledger.Anchor(ctx, hash); err != nil {
				s.logger.Warn("Ledger anchoring failed",
					zap.String("expense_id", expense.ID.String()),
					zap.Error(err),
				)
			} else {
				txHash = anchored
			}
		}

		if cid == "" && txHash == "" {
			return
		}

		if err := s.expenseRepo.UpdateAnchors(ctx, expense.ID, cid, txHash); err != nil {
			s.logger.Error("Failed to store anchors",
				zap.String("expense_id", expense.ID.String()),
				zap.Error(err),
			)
			return
		}

		s.publishEvent(notify.EventExpenseAnchored, expense)
	}()
}

func (s *ExpenseService) publishEvent(eventType string, expense *models.Expense) {
	err := s.publisher.Publish(notify.Event{
		Type:      eventType,
		ExpenseID: expense.ID.String(),
		UserID:    expense.UserID.String(),
		Status:    string(expense.Status),
	})
	if err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

// ParseCategory normalizes free-form category text to a known category.
func ParseCategory(raw string) models.ExpenseCategory {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch models.ExpenseCategory(normalized) {
	case models.CategoryFood, models.CategoryTravel, models.CategoryTransport,
		models.CategoryAccommodation, models.CategoryUtilities,
		models.CategoryOfficeSupplies, models.CategoryEntertainment,
		models.CategoryHealthcare:
		return models.ExpenseCategory(normalized)
	}

	switch {
	case strings.Contains(normalized, "meal") || strings.Contains(normalized, "restaurant") || strings.Contains(normalized, "dining"):
		return models.CategoryFood
	case strings.Contains(normalized, "hotel") || strings.Contains(normalized, "lodging"):
		return models.CategoryAccommodation
	case strings.Contains(normalized, "taxi") || strings.Contains(normalized, "fuel") || strings.Contains(normalized, "parking"):
		return models.CategoryTransport
	case strings.Contains(normalized, "flight") || strings.Contains(normalized, "airline"):
		return models.CategoryTravel
	case strings.Contains(normalized, "office") || strings.Contains(normalized, "supplies"):
		return models.CategoryOfficeSupplies
	}
	return models.CategoryOther
}

func parseDateOr(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006", "01/02/2006", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return fallback
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func expenseResponse(e *models.Expense) *dto.ExpenseResponse {
	resp := &dto.ExpenseResponse{
		ID:              e.ID.String(),
		UserID:          e.UserID.String(),
		VendorName:      e.VendorName,
		Category:        string(e.Category),
		Description:     e.Description,
		Amount:          e.Amount,
		Currency:        e.Currency,
		TaxAmount:       e.TaxAmount,
		PaymentMethod:   e.PaymentMethod,
		TransactionDate: e.TransactionDate.Format("2006-01-02"),
		DocumentURL:     e.DocumentURL,
		ReceiptCID:      e.ReceiptCID,
		LedgerTxHash:    e.LedgerTxHash,
		Status:          string(e.Status),
		Summary:         e.Summary,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
	if e.TripID != uuid.Nil {
		resp.TripID = e.TripID.String()
	}
	return resp
}
