package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.ExpenseCategory
	}{
		{name: "exact match", input: "food", want: models.CategoryFood},
		{name: "case insensitive", input: "Travel", want: models.CategoryTravel},
		{name: "meals maps to food", input: "Meals & Entertainment", want: models.CategoryFood},
		{name: "hotel maps to accommodation", input: "Hotel", want: models.CategoryAccommodation},
		{name: "taxi maps to transport", input: "Taxi ride", want: models.CategoryTransport},
		{name: "flight maps to travel", input: "Flight tickets", want: models.CategoryTravel},
		{name: "unknown falls back", input: "quantum widgets", want: models.CategoryOther},
		{name: "empty falls back", input: "", want: models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.input))
		})
	}
}

func TestParseDateOr(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "iso date", input: "2026-03-14", want: "2026-03-14"},
		{name: "slash date", input: "14/03/2026", want: "2026-03-14"},
		{name: "empty uses fallback", input: "", want: "2026-01-01"},
		{name: "garbage uses fallback", input: "yesterday", want: "2026-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDateOr(tt.input, fallback)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

type tripLookupStub struct {
	trip *models.Trip
	err  error
}

func (s tripLookupStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	return s.trip, s.err
}

func TestCreateFromReceiptRejectsUnknownTrip(t *testing.T) {
	svc := &ExpenseService{
		tripRepo: tripLookupStub{err: errors.New("no rows in result set")},
		logger:   zap.NewNop(),
	}

	_, err := svc.CreateFromReceipt(context.Background(), uuid.New(), &dto.OCRRequest{
		FileURL: "/uploads/receipt.jpg",
		TripID:  uuid.New().String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trip not found")
}

func TestCreateFromReceiptRejectsMalformedTripID(t *testing.T) {
	svc := &ExpenseService{
		tripRepo: tripLookupStub{},
		logger:   zap.NewNop(),
	}

	_, err := svc.CreateFromReceipt(context.Background(), uuid.New(), &dto.OCRRequest{
		FileURL: "/uploads/receipt.jpg",
		TripID:  "not-a-uuid",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trip id")
}
