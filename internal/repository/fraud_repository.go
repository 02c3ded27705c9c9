package repository

import (
	"context"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var fraudColumns = []string{
	"id", "expense_id", "overall_risk_score", "fraud_probability",
	"risk_factors", "verification_results", "image_analysis_results",
	"online_verification_results", "summary", "created_at",
}

type FraudRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFraudRepository(db *pgxpool.Pool, logger *zap.Logger) *FraudRepository {
	return &FraudRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FraudRepository) Create(ctx context.Context, fc *models.FraudCheck) error {
	query := squirrel.Insert("receipt_fraud_checks").
		Columns(fraudColumns...).
		Values(fc.ID, fc.ExpenseID, fc.OverallRiskScore, fc.FraudProbability,
			fc.RiskFactors, fc.VerificationResults, fc.ImageAnalysis,
			fc.OnlineVerification, fc.Summary, fc.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetLatestByExpenseID returns the most recent check; re-runs supersede
// earlier results without deleting them.
func (r *FraudRepository) GetLatestByExpenseID(ctx context.Context, expenseID uuid.UUID) (*models.FraudCheck, error) {
	query := squirrel.Select(fraudColumns...).
		From("receipt_fraud_checks").
		Where(squirrel.Eq{"expense_id": expenseID}).
		OrderBy("created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var fc models.FraudCheck
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&fc.ID, &fc.ExpenseID, &fc.OverallRiskScore, &fc.FraudProbability,
		&fc.RiskFactors, &fc.VerificationResults, &fc.ImageAnalysis,
		&fc.OnlineVerification, &fc.Summary, &fc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &fc, nil
}
