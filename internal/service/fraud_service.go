package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNoFraudCheck = errors.New("no fraud check recorded for expense")

// Risk weights are additive; the overall score is capped at 1.0 and the
// fraud probability is 0.8 of the score.
const (
	riskWeightUnusualAmount = 0.30
	riskWeightBurst         = 0.25
	riskWeightNewVendor     = 0.15
	riskWeightRoundAmount   = 0.10
	riskWeightMissingFields = 0.15
	riskWeightFutureDate    = 0.30
	riskWeightCategoryOver  = 0.25
	riskWeightCategoryHard  = 0.50
	riskWeightLLMReview     = 0.40

	fraudProbabilityFactor = 0.8
	burstWindow            = 24 * time.Hour
	burstThreshold         = 5
	historyWindow          = 90 * 24 * time.Hour
)

// categoryRange bounds a plausible expense for the category. Amounts above
// Max add risk; above HardMax they add the hard weight.
type categoryRange struct {
	Max     float64
	HardMax float64
}

var categoryRanges = map[models.ExpenseCategory]categoryRange{
	models.CategoryFood:           {Max: 300, HardMax: 1000},
	models.CategoryTravel:         {Max: 2000, HardMax: 10000},
	models.CategoryTransport:      {Max: 500, HardMax: 3000},
	models.CategoryAccommodation:  {Max: 1500, HardMax: 8000},
	models.CategoryUtilities:      {Max: 800, HardMax: 3000},
	models.CategoryOfficeSupplies: {Max: 1000, HardMax: 5000},
	models.CategoryEntertainment:  {Max: 400, HardMax: 2000},
	models.CategoryHealthcare:     {Max: 2000, HardMax: 10000},
}

// FraudService scores an expense for fraud indicators. The LLM receipt
// review, the spending-pattern analysis and the field heuristics run in
// parallel; their weights are summed and capped.
type FraudService struct {
	expenseRepo *repository.ExpenseRepository
	fraudRepo   *repository.FraudRepository
	llmService  *LLMService
	logger      *zap.Logger
}

func NewFraudService(
	expenseRepo *repository.ExpenseRepository,
	fraudRepo *repository.FraudRepository,
	llmService *LLMService,
	logger *zap.Logger,
) *FraudService {
	return &FraudService{
		expenseRepo: expenseRepo,
		fraudRepo:   fraudRepo,
		llmService:  llmService,
		logger:      logger,
	}
}

// CheckExpense runs all checks against an expense and persists the result.
func (s *FraudService) CheckExpense(ctx context.Context, req *dto.FraudCheckRequest) (*dto.FraudCheckResponse, error) {
	expenseID, err := uuid.Parse(req.ExpenseID)
	if err != nil {
		return nil, fmt.Errorf("invalid expense id: %w", err)
	}

	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("expense not found: %w", err)
	}

	var (
		llmReview      map[string]interface{}
		patternFactors []string
		patternScore   float64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		review, err := s.reviewWithLLM(gctx, expense, req.FileURL)
		if err != nil {
			s.logger.Warn("LLM fraud review failed", zap.Error(err))
			return nil
		}
		llmReview = review
		return nil
	})

	g.Go(func() error {
		factors, score, err := s.analyzePatterns(gctx, expense)
		if err != nil {
			s.logger.Warn("Pattern analysis failed", zap.Error(err))
			return nil
		}
		patternFactors, patternScore = factors, score
		return nil
	})

	heuristicFactors, heuristicScore := AnalyzeFields(expense)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	riskFactors := append(heuristicFactors, patternFactors...)
	riskScore := heuristicScore + patternScore

	llmFactors, llmWeight, verification, imageAnalysis := MergeLLMReview(llmReview)
	riskFactors = append(riskFactors, llmFactors...)
	riskScore += llmWeight

	riskScore = clamp01(riskScore)
	probability := clamp01(riskScore * fraudProbabilityFactor)

	if riskFactors == nil {
		riskFactors = []string{}
	}

	online := map[string]interface{}{
		"vendor_checked": expense.VendorName != "",
		"status":         "not_verified",
	}

	summary := s.buildSummary(expense, riskScore, riskFactors)

	check := &models.FraudCheck{
		ID:                  uuid.New(),
		ExpenseID:           expense.ID,
		OverallRiskScore:    riskScore,
		FraudProbability:    probability,
		RiskFactors:         mustJSON(riskFactors),
		VerificationResults: mustJSON(verification),
		ImageAnalysis:       mustJSON(imageAnalysis),
		OnlineVerification:  mustJSON(online),
		Summary:             summary,
		CreatedAt:           time.Now(),
	}
	if err := s.fraudRepo.Create(ctx, check); err != nil {
		return nil, fmt.Errorf("failed to persist fraud check: %w", err)
	}

	s.logger.Info("Fraud check completed",
		zap.String("expense_id", expense.ID.String()),
		zap.Float64("risk_score", riskScore),
		zap.Float64("fraud_probability", probability),
		zap.Int("risk_factors", len(riskFactors)),
	)

	return &dto.FraudCheckResponse{
		FraudCheckID:        check.ID.String(),
		OverallRiskScore:    riskScore,
		FraudProbability:    probability,
		RiskFactors:         riskFactors,
		VerificationResults: verification,
		ImageAnalysis:       imageAnalysis,
		OnlineVerification:  online,
		Summary:             summary,
	}, nil
}

// LatestResult returns the most recent persisted check for an expense; a
// re-run supersedes earlier results. Non-admin callers only see checks on
// their own expenses.
func (s *FraudService) LatestResult(ctx context.Context, expenseID, userID uuid.UUID, role string) (*dto.FraudCheckResponse, error) {
	expense, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("expense not found: %w", err)
	}
	if role != string(models.RoleAdmin) && expense.UserID != userID {
		return nil, fmt.Errorf("unauthorized")
	}

	check, err := s.fraudRepo.GetLatestByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFraudCheck, err)
	}
	return FraudCheckToResponse(check), nil
}

// FraudCheckToResponse rehydrates a stored check row into the response the
// original check call returned.
func FraudCheckToResponse(check *models.FraudCheck) *dto.FraudCheckResponse {
	resp := &dto.FraudCheckResponse{
		FraudCheckID:        check.ID.String(),
		OverallRiskScore:    check.OverallRiskScore,
		FraudProbability:    check.FraudProbability,
		RiskFactors:         []string{},
		VerificationResults: map[string]interface{}{},
		ImageAnalysis:       map[string]interface{}{},
		OnlineVerification:  map[string]interface{}{},
		Summary:             check.Summary,
	}
	_ = json.Unmarshal([]byte(check.RiskFactors), &resp.RiskFactors)
	_ = json.Unmarshal([]byte(check.VerificationResults), &resp.VerificationResults)
	_ = json.Unmarshal([]byte(check.ImageAnalysis), &resp.ImageAnalysis)
	_ = json.Unmarshal([]byte(check.OnlineVerification), &resp.OnlineVerification)
	return resp
}

// MergeLLMReview folds an LLM receipt review into risk factors and a score
// contribution. The review weight applies only when the model actually
// reported risk factors; a confident clean verdict adds no risk.
func MergeLLMReview(review map[string]interface{}) ([]string, float64, map[string]interface{}, map[string]interface{}) {
	verification := map[string]interface{}{}
	imageAnalysis := map[string]interface{}{}
	if review == nil {
		return nil, 0, verification, imageAnalysis
	}

	var factors []string
	if raw, ok := review["risk_factors"].([]interface{}); ok {
		for _, f := range raw {
			if str, ok := f.(string); ok && str != "" {
				factors = append(factors, str)
			}
		}
	}
	if vr, ok := review["verification_results"].(map[string]interface{}); ok {
		verification = vr
	}

	var weight float64
	if confidence, ok := review["confidence_score"].(float64); ok && confidence > 0 {
		imageAnalysis["llm_confidence_score"] = confidence
		if len(factors) > 0 {
			weight = riskWeightLLMReview * clamp01(confidence)
		}
	}

	return factors, weight, verification, imageAnalysis
}

func (s *FraudService) reviewWithLLM(ctx context.Context, expense *models.Expense, fileURL string) (map[string]interface{}, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"vendor_name":      expense.VendorName,
		"amount":           expense.Amount,
		"currency":         expense.Currency,
		"category":         expense.Category,
		"transaction_date": expense.TransactionDate.Format("2006-01-02"),
		"tax_amount":       expense.TaxAmount,
		"payment_method":   expense.PaymentMethod,
		"description":      expense.Description,
	})
	if err != nil {
		return nil, err
	}
	return s.llmService.ReviewReceipt(ctx, string(payload), fileURL)
}

// analyzePatterns compares the expense against the user's recent history.
func (s *FraudService) analyzePatterns(ctx context.Context, expense *models.Expense) ([]string, float64, error) {
	since := time.Now().Add(-historyWindow)
	history, err := s.expenseRepo.ListRecentByUser(ctx, expense.UserID, since)
	if err != nil {
		return nil, 0, err
	}

	var factors []string
	var score float64

	amounts := make([]float64, 0, len(history))
	recentCount := 0
	vendorSeen := false
	cutoff := time.Now().Add(-burstWindow)

	for _, e := range history {
		if e.ID == expense.ID {
			continue
		}
		amounts = append(amounts, e.Amount)
		if e.CreatedAt.After(cutoff) {
			recentCount++
		}
		if e.VendorName != "" && e.VendorName == expense.VendorName {
			vendorSeen = true
		}
	}

	if IsUnusualAmount(amounts, expense.Amount) {
		factors = append(factors, "Amount deviates sharply from this user's recent spending")
		score += riskWeightUnusualAmount
	}
	if recentCount >= burstThreshold {
		factors = append(factors, fmt.Sprintf("%d expenses submitted in the last 24 hours", recentCount))
		score += riskWeightBurst
	}
	if !vendorSeen && expense.VendorName != "" && len(amounts) > 0 {
		factors = append(factors, "First expense from this vendor")
		score += riskWeightNewVendor
	}

	return factors, score, nil
}

// AnalyzeFields runs the stateless field heuristics over a single expense.
func AnalyzeFields(expense *models.Expense) ([]string, float64) {
	var factors []string
	var score float64

	if r, ok := categoryRanges[expense.Category]; ok {
		switch {
		case r.HardMax > 0 && expense.Amount > r.HardMax:
			factors = append(factors, fmt.Sprintf("Amount %.2f far exceeds the %s category ceiling", expense.Amount, expense.Category))
			score += riskWeightCategoryHard
		case r.Max > 0 && expense.Amount > r.Max:
			factors = append(factors, fmt.Sprintf("Amount %.2f is high for the %s category", expense.Amount, expense.Category))
			score += riskWeightCategoryOver
		}
	}

	if IsRoundAmount(expense.Amount) {
		factors = append(factors, "Suspiciously round amount")
		score += riskWeightRoundAmount
	}

	if expense.TransactionDate.After(time.Now().Add(24 * time.Hour)) {
		factors = append(factors, "Transaction date is in the future")
		score += riskWeightFutureDate
	}

	missing := 0
	if expense.VendorName == "" {
		missing++
	}
	if expense.Amount <= 0 {
		missing++
	}
	if expense.TransactionDate.IsZero() {
		missing++
	}
	if missing > 0 {
		factors = append(factors, fmt.Sprintf("%d required receipt fields missing or empty", missing))
		score += riskWeightMissingFields
	}

	return factors, score
}

// IsUnusualAmount reports whether amount sits more than two standard
// deviations above the mean of the history. Fewer than three samples is
// too little signal.
func IsUnusualAmount(history []float64, amount float64) bool {
	if len(history) < 3 {
		return false
	}

	var sum float64
	for _, a := range history {
		sum += a
	}
	mean := sum / float64(len(history))

	var variance float64
	for _, a := range history {
		variance += (a - mean) * (a - mean)
	}
	stddev := math.Sqrt(variance / float64(len(history)))
	if stddev == 0 {
		return amount != mean
	}

	return (amount-mean)/stddev > 2
}

// IsRoundAmount flags large amounts divisible by 100.
func IsRoundAmount(amount float64) bool {
	return amount >= 100 && math.Mod(amount, 100) == 0
}

func (s *FraudService) buildSummary(expense *models.Expense, riskScore float64, factors []string) string {
	level := "low"
	switch {
	case riskScore >= 0.7:
		level = "high"
	case riskScore >= 0.4:
		level = "medium"
	}
	if len(factors) == 0 {
		return fmt.Sprintf("No fraud indicators found for expense at %s (risk: %s)", expense.VendorName, level)
	}
	return fmt.Sprintf("%d fraud indicators found for expense at %s (risk: %s)", len(factors), expense.VendorName, level)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
