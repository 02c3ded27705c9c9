package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsService aggregates expenses into per-trip and account-wide views.
// Sums run through decimal Money so daily trends and budget remainders do
// not drift; k-means over amounts groups expenses into small/medium/large.
type AnalyticsService struct {
	expenseRepo *repository.ExpenseRepository
	tripRepo    *repository.TripRepository
	llmService  *LLMService
	logger      *zap.Logger
}

func NewAnalyticsService(
	expenseRepo *repository.ExpenseRepository,
	tripRepo *repository.TripRepository,
	llmService *LLMService,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		expenseRepo: expenseRepo,
		tripRepo:    tripRepo,
		llmService:  llmService,
		logger:      logger,
	}
}

// TripAnalytics builds the full analytics view for one named trip.
func (s *AnalyticsService) TripAnalytics(ctx context.Context, tripName string) (*dto.TripAnalyticsResponse, error) {
	trip, err := s.tripRepo.GetByName(ctx, tripName)
	if err != nil {
		return nil, fmt.Errorf("trip not found: %w", err)
	}

	expenses, err := s.expenseRepo.ListByTripID(ctx, trip.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trip expenses: %w", err)
	}

	resp := s.analyze(ctx, expenses)
	resp.TripName = trip.Name
	resp.BudgetComparison = compareBudget(trip.Budget, expenses)

	s.logger.Info("Trip analytics generated",
		zap.String("trip", trip.Name),
		zap.Int("expenses", len(expenses)),
	)

	return resp, nil
}

// AllExpensesAnalytics builds the same view over every expense in the system.
func (s *AnalyticsService) AllExpensesAnalytics(ctx context.Context) (*dto.TripAnalyticsResponse, error) {
	expenses, err := s.expenseRepo.ListAll(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	resp := s.analyze(ctx, expenses)

	s.logger.Info("Account-wide analytics generated", zap.Int("expenses", len(expenses)))

	return resp, nil
}

// Dashboard returns the per-user aggregate counters.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	expenses, err := s.expenseRepo.ListByUserID(ctx, userID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load user expenses: %w", err)
	}

	total := models.NewMoneyZero("")
	countsByStatus := map[string]int{}
	totalsByCategory := map[string]float64{}

	categoryTotals := map[string]models.Money{}
	for _, e := range expenses {
		total = total.Add(models.MoneyFromFloat(e.Amount, e.Currency))
		countsByStatus[string(e.Status)]++

		key := string(e.Category)
		current, ok := categoryTotals[key]
		if !ok {
			current = models.NewMoneyZero(e.Currency)
		}
		categoryTotals[key] = current.Add(models.MoneyFromFloat(e.Amount, e.Currency))
	}
	for key, sum := range categoryTotals {
		totalsByCategory[key] = sum.Float64()
	}

	return &dto.DashboardResponse{
		TotalExpenses:    total.Float64(),
		ExpenseCount:     len(expenses),
		CountsByStatus:   countsByStatus,
		TotalsByCategory: totalsByCategory,
	}, nil
}

func (s *AnalyticsService) analyze(ctx context.Context, expenses []*models.Expense) *dto.TripAnalyticsResponse {
	resp := &dto.TripAnalyticsResponse{
		ExpenseDistribution: CategoryDistribution(expenses),
		TrendAnalysis:       DailyTrend(expenses),
		ExpenseClusters:     ClusterExpenses(expenses, 3),
	}

	if len(expenses) > 0 {
		insights, err := s.generateInsights(ctx, resp)
		if err != nil {
			s.logger.Warn("AI insight generation failed", zap.Error(err))
		} else {
			resp.AIInsights = insights
		}
	}

	return resp
}

func (s *AnalyticsService) generateInsights(ctx context.Context, resp *dto.TripAnalyticsResponse) (string, error) {
	var b strings.Builder
	b.WriteString("Analyze this expense data and give three short observations about spending patterns and savings opportunities.\n\nSpending by category:\n")
	for _, p := range resp.ExpenseDistribution {
		fmt.Fprintf(&b, "- %s: %.2f\n", p.Label, p.Value)
	}
	b.WriteString("\nDaily totals:\n")
	for _, p := range resp.TrendAnalysis {
		fmt.Fprintf(&b, "- %s: %.2f\n", p.Label, p.Value)
	}
	return s.llmService.Insights(ctx, b.String())
}

// CategoryDistribution sums amounts per category, sorted descending.
func CategoryDistribution(expenses []*models.Expense) []dto.SeriesPoint {
	totals := map[string]models.Money{}
	for _, e := range expenses {
		key := string(e.Category)
		current, ok := totals[key]
		if !ok {
			current = models.NewMoneyZero(e.Currency)
		}
		totals[key] = current.Add(models.MoneyFromFloat(e.Amount, e.Currency))
	}

	points := make([]dto.SeriesPoint, 0, len(totals))
	for label, sum := range totals {
		points = append(points, dto.SeriesPoint{Label: label, Value: sum.Float64()})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}

// DailyTrend sums amounts per transaction day, sorted chronologically.
func DailyTrend(expenses []*models.Expense) []dto.SeriesPoint {
	totals := map[string]models.Money{}
	for _, e := range expenses {
		day := e.TransactionDate.Format("2006-01-02")
		current, ok := totals[day]
		if !ok {
			current = models.NewMoneyZero(e.Currency)
		}
		totals[day] = current.Add(models.MoneyFromFloat(e.Amount, e.Currency))
	}

	points := make([]dto.SeriesPoint, 0, len(totals))
	for label, sum := range totals {
		points = append(points, dto.SeriesPoint{Label: label, Value: sum.Float64()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

func compareBudget(budget float64, expenses []*models.Expense) *dto.BudgetComparison {
	actual := models.NewMoneyZero("")
	for _, e := range expenses {
		actual = actual.Add(models.MoneyFromFloat(e.Amount, e.Currency))
	}
	remaining := models.MoneyFromFloat(budget, "").Subtract(actual)

	return &dto.BudgetComparison{
		Budget:    budget,
		Actual:    actual.Float64(),
		Remaining: remaining.Float64(),
		OverSpent: remaining.IsNegative(),
	}
}

// ClusterExpenses runs one-dimensional k-means over the amounts and tags
// each expense with its cluster. Fewer expenses than clusters collapses k.
func ClusterExpenses(expenses []*models.Expense, k int) []dto.ClusterPoint {
	if len(expenses) == 0 {
		return nil
	}
	if k > len(expenses) {
		k = len(expenses)
	}

	amounts := make([]float64, len(expenses))
	for i, e := range expenses {
		amounts[i] = e.Amount
	}

	assignments := kmeans1D(amounts, k, 50)

	points := make([]dto.ClusterPoint, len(expenses))
	for i, e := range expenses {
		points[i] = dto.ClusterPoint{
			Date:    e.TransactionDate.Format("2006-01-02"),
			Amount:  e.Amount,
			Cluster: assignments[i],
		}
	}
	return points
}

// kmeans1D clusters scalar values. Centroids seed at evenly spaced
// quantiles so the small/medium/large split is stable.
func kmeans1D(values []float64, k, maxIterations int) []int {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	centroids := make([]float64, k)
	for i := 0; i < k; i++ {
		idx := (2*i + 1) * len(sorted) / (2 * k)
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		centroids[i] = sorted[idx]
	}

	assignments := make([]int, len(values))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range values {
			best := 0
			bestDist := math.Abs(v - centroids[0])
			for c := 1; c < k; c++ {
				if d := math.Abs(v - centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([]float64, k)
		counts := make([]int, k)
		for i, v := range values {
			sums[assignments[i]] += v
			counts[assignments[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				centroids[c] = sums[c] / float64(counts[c])
			}
		}
	}

	return assignments
}
