package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTripExists = errors.New("trip with this name already exists")

type TripService struct {
	tripRepo *repository.TripRepository
	logger   *zap.Logger
}

func NewTripService(tripRepo *repository.TripRepository, logger *zap.Logger) *TripService {
	return &TripService{tripRepo: tripRepo, logger: logger}
}

// CreateTrip records a trip. Names are unique so analytics can address
// trips by name.
func (s *TripService) CreateTrip(ctx context.Context, userID uuid.UUID, req *dto.CreateTripRequest) (*dto.TripResponse, error) {
	if existing, _ := s.tripRepo.GetByName(ctx, req.Name); existing != nil {
		return nil, ErrTripExists
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date precedes start date")
	}

	now := time.Now()
	trip := &models.Trip{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Budget:    req.Budget,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.logger.Info("Trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.String("name", trip.Name),
	)

	return tripResponse(trip), nil
}

func (s *TripService) ListTrips(ctx context.Context, userID uuid.UUID) ([]*dto.TripResponse, error) {
	trips, err := s.tripRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TripResponse, len(trips))
	for i, trip := range trips {
		responses[i] = tripResponse(trip)
	}
	return responses, nil
}

func tripResponse(trip *models.Trip) *dto.TripResponse {
	return &dto.TripResponse{
		ID:        trip.ID.String(),
		Name:      trip.Name,
		Budget:    trip.Budget,
		StartDate: trip.StartDate.Format("2006-01-02"),
		EndDate:   trip.EndDate.Format("2006-01-02"),
		CreatedAt: trip.CreatedAt.Format(time.RFC3339),
	}
}
