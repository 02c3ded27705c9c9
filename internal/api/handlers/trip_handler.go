package handlers

import (
	"errors"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TripHandler struct {
	tripService *service.TripService
	logger      *zap.Logger
}

func NewTripHandler(tripService *service.TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		logger:      logger,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Record a trip with a budget so expenses can be grouped under it
// @Tags trips
// @Accept json
// @Produce json
// @Param request body dto.CreateTripRequest true "Trip details"
// @Security Bearer
// @Success 201 {object} dto.TripResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/trips [post]
func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateTripRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.tripService.CreateTrip(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTripExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Trip with this name already exists",
			})
		}
		h.logger.Error("Failed to create trip", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create trip",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTrips godoc
// @Summary List user's trips
// @Tags trips
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.TripResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/trips [get]
func (h *TripHandler) ListTrips(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.tripService.ListTrips(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list trips", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list trips",
		})
	}

	return c.JSON(resp)
}
