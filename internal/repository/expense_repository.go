package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrStaleStatus means a status update matched no row: either the expense is
// missing or it already left the pending state.
var ErrStaleStatus = errors.New("expense not pending or not found")

var expenseColumns = []string{
	"id", "user_id", "trip_id", "vendor_name", "category", "description",
	"amount", "currency", "tax_amount", "payment_method", "transaction_date",
	"document_url", "receipt_cid", "ledger_tx_hash", "status",
	"extracted_data", "summary", "created_at", "updated_at",
}

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns(expenseColumns...).
		Values(e.ID, e.UserID, e.TripID, e.VendorName, e.Category, e.Description,
			e.Amount, e.Currency, e.TaxAmount, e.PaymentMethod, e.TransactionDate,
			e.DocumentURL, e.ReceiptCID, e.LedgerTxHash, e.Status,
			e.ExtractedData, e.Summary, e.CreatedAt, e.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(scanTargets(&e)...)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *ExpenseRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	query = paginate(query, limit, offset)

	return r.list(ctx, query)
}

func (r *ExpenseRepository) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"trip_id": tripID}).
		OrderBy("transaction_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *ExpenseRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	query = paginate(query, limit, offset)

	return r.list(ctx, query)
}

// ListRecentByUser returns the submitter's history for pattern analysis.
func (r *ExpenseRepository) ListRecentByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]*models.Expense, error) {
	query := squirrel.Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"created_at": since}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

// UpdateStatus moves a pending expense to a terminal status. The WHERE clause
// on the current status makes the transition one-way at the SQL level.
func (r *ExpenseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ExpenseStatus) error {
	query := squirrel.Update("expenses").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": models.StatusPending}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleStatus
	}
	return nil
}

// UpdateAnchors records the receipt CID and ledger transaction hash once the
// asynchronous pin/anchor round-trip completes.
func (r *ExpenseRepository) UpdateAnchors(ctx context.Context, id uuid.UUID, receiptCID, ledgerTxHash string) error {
	query := squirrel.Update("expenses").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	if receiptCID != "" {
		query = query.Set("receipt_cid", receiptCID)
	}
	if ledgerTxHash != "" {
		query = query.Set("ledger_tx_hash", ledgerTxHash)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Expense, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(scanTargets(&e)...); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

func scanTargets(e *models.Expense) []interface{} {
	return []interface{}{
		&e.ID, &e.UserID, &e.TripID, &e.VendorName, &e.Category, &e.Description,
		&e.Amount, &e.Currency, &e.TaxAmount, &e.PaymentMethod, &e.TransactionDate,
		&e.DocumentURL, &e.ReceiptCID, &e.LedgerTxHash, &e.Status,
		&e.ExtractedData, &e.Summary, &e.CreatedAt, &e.UpdatedAt,
	}
}

// paginate applies limit/offset only when set; a zero limit means all rows.
func paginate(query squirrel.SelectBuilder, limit, offset int) squirrel.SelectBuilder {
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	if offset > 0 {
		query = query.Offset(uint64(offset))
	}
	return query
}
