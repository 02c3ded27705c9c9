package repository

import (
	"context"

	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var tripColumns = []string{"id", "user_id", "name", "budget", "start_date", "end_date", "created_at", "updated_at"}

type TripRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTripRepository(db *pgxpool.Pool, logger *zap.Logger) *TripRepository {
	return &TripRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	query := squirrel.Insert("trips").
		Columns(tripColumns...).
		Values(trip.ID, trip.UserID, trip.Name, trip.Budget, trip.StartDate, trip.EndDate, trip.CreatedAt, trip.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TripRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *TripRepository) GetByName(ctx context.Context, name string) (*models.Trip, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *TripRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Trip, error) {
	query := squirrel.Select(tripColumns...).
		From("trips").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var trip models.Trip
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&trip.ID, &trip.UserID, &trip.Name, &trip.Budget, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

func (r *TripRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Trip, error) {
	query := squirrel.Select(tripColumns...).
		From("trips").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(
			&trip.ID, &trip.UserID, &trip.Name, &trip.Budget, &trip.StartDate, &trip.EndDate, &trip.CreatedAt, &trip.UpdatedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}
