package models

import (
	"time"

	"github.com/google/uuid"
)

// FraudCheck holds one fraud analysis run for an expense. Sub-results are
// stored as JSON blobs, mirroring what the handler returns.
type FraudCheck struct {
	ID                  uuid.UUID `db:"id"`
	ExpenseID           uuid.UUID `db:"expense_id"`
	OverallRiskScore    float64   `db:"overall_risk_score"`
	FraudProbability    float64   `db:"fraud_probability"`
	RiskFactors         string    `db:"risk_factors"`
	VerificationResults string    `db:"verification_results"`
	ImageAnalysis       string    `db:"image_analysis_results"`
	OnlineVerification  string    `db:"online_verification_results"`
	Summary             string    `db:"summary"`
	CreatedAt           time.Time `db:"created_at"`
}
