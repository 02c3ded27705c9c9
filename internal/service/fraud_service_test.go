package service

import (
	"testing"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFieldsCleanExpense(t *testing.T) {
	expense := &models.Expense{
		VendorName:      "Cafe Luna",
		Category:        models.CategoryFood,
		Amount:          23.40,
		TransactionDate: time.Now().Add(-48 * time.Hour),
	}

	factors, score := AnalyzeFields(expense)
	assert.Empty(t, factors)
	assert.Zero(t, score)
}

func TestAnalyzeFieldsCategoryRanges(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		wantScore float64
	}{
		{name: "within range", amount: 50, wantScore: 0},
		{name: "above max", amount: 500, wantScore: riskWeightCategoryOver},
		{name: "above hard max", amount: 5000, wantScore: riskWeightCategoryHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := &models.Expense{
				VendorName:      "Cafe Luna",
				Category:        models.CategoryFood,
				Amount:          tt.amount,
				TransactionDate: time.Now().Add(-time.Hour),
			}
			_, score := AnalyzeFields(expense)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
		})
	}
}

func TestAnalyzeFieldsRoundAmount(t *testing.T) {
	expense := &models.Expense{
		VendorName:      "Vendor",
		Category:        models.CategoryFood,
		Amount:          200,
		TransactionDate: time.Now().Add(-time.Hour),
	}

	factors, score := AnalyzeFields(expense)
	assert.Len(t, factors, 1)
	assert.InDelta(t, riskWeightRoundAmount, score, 1e-9)
}

func TestAnalyzeFieldsFutureDateAndMissing(t *testing.T) {
	expense := &models.Expense{
		Category:        models.CategoryFood,
		Amount:          0,
		TransactionDate: time.Now().Add(72 * time.Hour),
	}

	factors, score := AnalyzeFields(expense)
	assert.Len(t, factors, 2)
	assert.InDelta(t, riskWeightFutureDate+riskWeightMissingFields, score, 1e-9)
}

func TestIsUnusualAmount(t *testing.T) {
	history := []float64{20, 25, 22, 18, 24, 21}

	assert.False(t, IsUnusualAmount(history, 26))
	assert.True(t, IsUnusualAmount(history, 500))
	assert.False(t, IsUnusualAmount([]float64{20, 25}, 500), "too few samples")
	assert.True(t, IsUnusualAmount([]float64{10, 10, 10}, 11), "zero stddev, different amount")
	assert.False(t, IsUnusualAmount([]float64{10, 10, 10}, 10))
}

func TestIsRoundAmount(t *testing.T) {
	assert.True(t, IsRoundAmount(100))
	assert.True(t, IsRoundAmount(2500))
	assert.False(t, IsRoundAmount(99.99))
	assert.False(t, IsRoundAmount(150))
	assert.False(t, IsRoundAmount(50), "small amounts exempt")
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.3))
	assert.Equal(t, 0.42, clamp01(0.42))
	assert.Equal(t, 1.0, clamp01(1.7))
}

func TestFraudProbabilityCapped(t *testing.T) {
	// worst case: every weight fires, score caps at 1.0 and probability at 0.8
	score := clamp01(riskWeightUnusualAmount + riskWeightBurst + riskWeightNewVendor +
		riskWeightRoundAmount + riskWeightMissingFields + riskWeightFutureDate +
		riskWeightCategoryHard + riskWeightLLMReview)
	assert.Equal(t, 1.0, score)

	probability := clamp01(score * fraudProbabilityFactor)
	assert.InDelta(t, 0.8, probability, 1e-9)
}

func TestMergeLLMReview(t *testing.T) {
	t.Run("confident clean review adds no risk", func(t *testing.T) {
		factors, weight, _, imageAnalysis := MergeLLMReview(map[string]interface{}{
			"risk_factors":     []interface{}{},
			"confidence_score": 0.95,
		})
		assert.Empty(t, factors)
		assert.Equal(t, 0.0, weight)
		assert.Equal(t, 0.95, imageAnalysis["llm_confidence_score"])
	})

	t.Run("reported factors carry weighted confidence", func(t *testing.T) {
		factors, weight, _, _ := MergeLLMReview(map[string]interface{}{
			"risk_factors":     []interface{}{"amount mismatch", "vendor unreadable"},
			"confidence_score": 0.5,
		})
		assert.Equal(t, []string{"amount mismatch", "vendor unreadable"}, factors)
		assert.InDelta(t, riskWeightLLMReview*0.5, weight, 1e-9)
	})

	t.Run("factors without confidence add no weight", func(t *testing.T) {
		factors, weight, _, _ := MergeLLMReview(map[string]interface{}{
			"risk_factors": []interface{}{"suspicious edit"},
		})
		assert.Len(t, factors, 1)
		assert.Equal(t, 0.0, weight)
	})

	t.Run("nil review", func(t *testing.T) {
		factors, weight, verification, imageAnalysis := MergeLLMReview(nil)
		assert.Nil(t, factors)
		assert.Equal(t, 0.0, weight)
		assert.Empty(t, verification)
		assert.Empty(t, imageAnalysis)
	})

	t.Run("verification results pass through", func(t *testing.T) {
		_, _, verification, _ := MergeLLMReview(map[string]interface{}{
			"verification_results": map[string]interface{}{"vendor_exists": true},
		})
		assert.Equal(t, true, verification["vendor_exists"])
	})
}

func TestFraudCheckToResponse(t *testing.T) {
	check := &models.FraudCheck{
		ID:                  uuid.New(),
		ExpenseID:           uuid.New(),
		OverallRiskScore:    0.55,
		FraudProbability:    0.44,
		RiskFactors:         `["round amount"]`,
		VerificationResults: `{"vendor_exists":true}`,
		ImageAnalysis:       `{"llm_confidence_score":0.8}`,
		OnlineVerification:  `{"status":"not_verified"}`,
		Summary:             "medium risk",
		CreatedAt:           time.Now(),
	}

	resp := FraudCheckToResponse(check)
	assert.Equal(t, check.ID.String(), resp.FraudCheckID)
	assert.Equal(t, 0.55, resp.OverallRiskScore)
	assert.Equal(t, 0.44, resp.FraudProbability)
	assert.Equal(t, []string{"round amount"}, resp.RiskFactors)
	assert.Equal(t, true, resp.VerificationResults["vendor_exists"])
	assert.Equal(t, 0.8, resp.ImageAnalysis["llm_confidence_score"])
	assert.Equal(t, "medium risk", resp.Summary)
}

func TestFraudCheckToResponseMalformedBlobs(t *testing.T) {
	check := &models.FraudCheck{
		ID:          uuid.New(),
		RiskFactors: "not json",
	}

	resp := FraudCheckToResponse(check)
	assert.NotNil(t, resp.RiskFactors)
	assert.NotNil(t, resp.VerificationResults)
}
