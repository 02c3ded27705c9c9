package handlers

import (
	"errors"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/models"
	"github.com/MR-PROSTER/Expensync/internal/repository"
	"github.com/MR-PROSTER/Expensync/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// CreateExpense godoc
// @Summary Create an expense
// @Description Record a manually entered expense in pending status
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense details"
// @Security Bearer
// @Success 201 {object} dto.CreateExpenseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.CreateExpenseRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.expenseService.CreateExpense(c.Context(), userID, &req)
	if err != nil {
		h.logger.Error("Failed to create expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetExpense godoc
// @Summary Get an expense
// @Description Get one expense by id. Employees only see their own.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	resp, err := h.expenseService.GetExpense(c.Context(), userID, getRole(c), expenseID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expense not found",
		})
	}

	return c.JSON(resp)
}

// ListExpenses godoc
// @Summary List expenses
// @Description Page through expenses. Admins see everyone's.
// @Tags expenses
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	resp, err := h.expenseService.ListExpenses(c.Context(), userID, getRole(c), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list expenses",
		})
	}

	return c.JSON(resp)
}

// ApproveExpense godoc
// @Summary Approve an expense
// @Description Move a pending expense to approved. Terminal statuses never change.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/expenses/{id}/approve [post]
func (h *ExpenseHandler) ApproveExpense(c *fiber.Ctx) error {
	return h.setStatus(c, models.StatusApproved)
}

// RejectExpense godoc
// @Summary Reject an expense
// @Description Move a pending expense to rejected. Terminal statuses never change.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/expenses/{id}/reject [post]
func (h *ExpenseHandler) RejectExpense(c *fiber.Ctx) error {
	return h.setStatus(c, models.StatusRejected)
}

func (h *ExpenseHandler) setStatus(c *fiber.Ctx, status models.ExpenseStatus) error {
	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	resp, err := h.expenseService.SetStatus(c.Context(), expenseID, status)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) || errors.Is(err, repository.ErrStaleStatus) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Expense is not pending",
			})
		}
		h.logger.Error("Failed to update expense status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update expense status",
		})
	}

	return c.JSON(resp)
}
