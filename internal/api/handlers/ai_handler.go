package handlers

import (
	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AIHandler exposes the receipt parsing and fraud check endpoints.
type AIHandler struct {
	expenseService *service.ExpenseService
	fraudService   *service.FraudService
	logger         *zap.Logger
}

func NewAIHandler(expenseService *service.ExpenseService, fraudService *service.FraudService, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		expenseService: expenseService,
		fraudService:   fraudService,
		logger:         logger,
	}
}

// ParseReceipt godoc
// @Summary Parse a receipt into an expense
// @Description Run OCR and vision extraction over an uploaded receipt and create a pending expense from the merged fields
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.OCRRequest true "Receipt location"
// @Security Bearer
// @Success 201 {object} dto.OCRResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/ocr [post]
func (h *AIHandler) ParseReceipt(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.OCRRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.expenseService.CreateFromReceipt(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Receipt parsing failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Failed to parse receipt",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// FraudCheck godoc
// @Summary Run a fraud check on an expense
// @Description Score an expense for fraud indicators and persist the result
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.FraudCheckRequest true "Expense to check"
// @Security Bearer
// @Success 200 {object} dto.FraudCheckResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/fraud-check [post]
func (h *AIHandler) FraudCheck(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.FraudCheckRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.fraudService.CheckExpense(c.Context(), &req)
	if err != nil {
		h.logger.Error("Fraud check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Fraud check failed",
		})
	}

	return c.JSON(resp)
}

// GetFraudCheck godoc
// @Summary Latest fraud check for an expense
// @Description Return the most recent persisted fraud analysis; re-running a check supersedes earlier results
// @Tags ai
// @Produce json
// @Param expense_id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} dto.FraudCheckResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/fraud-check/{expense_id} [get]
func (h *AIHandler) GetFraudCheck(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("expense_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense id",
		})
	}

	resp, err := h.fraudService.LatestResult(c.Context(), expenseID, userID, getRole(c))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Fraud check not found",
		})
	}

	return c.JSON(resp)
}
