package handlers

import (
	"github.com/MR-PROSTER/Expensync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// TripAnalytics godoc
// @Summary Trip analytics
// @Description Category distribution, daily trend, budget comparison and amount clusters for one trip
// @Tags analytics
// @Produce json
// @Param trip_name query string true "Trip name"
// @Security Bearer
// @Success 200 {object} dto.TripAnalyticsResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/analytics/trip [get]
func (h *AnalyticsHandler) TripAnalytics(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	// Accepted as a query parameter on GET or a JSON body on POST.
	tripName := c.Query("trip_name")
	if tripName == "" && c.Method() == fiber.MethodPost {
		var req struct {
			TripName string `json:"trip_name"`
		}
		if err := c.BodyParser(&req); err == nil {
			tripName = req.TripName
		}
	}
	if tripName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "trip_name is required",
		})
	}

	resp, err := h.analyticsService.TripAnalytics(c.Context(), tripName)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Trip not found",
		})
	}

	return c.JSON(resp)
}

// AllExpensesAnalytics godoc
// @Summary Account-wide analytics
// @Description The trip analytics view over every expense in the system. Admin only.
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.TripAnalyticsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/analytics/all [get]
func (h *AnalyticsHandler) AllExpensesAnalytics(c *fiber.Ctx) error {
	resp, err := h.analyticsService.AllExpensesAnalytics(c.Context())
	if err != nil {
		h.logger.Error("Failed to build analytics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build analytics",
		})
	}

	return c.JSON(resp)
}

// Dashboard godoc
// @Summary User dashboard
// @Description Aggregate counters for the caller's expenses
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resp, err := h.analyticsService.Dashboard(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build dashboard",
		})
	}

	return c.JSON(resp)
}
