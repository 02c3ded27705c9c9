package handlers

import (
	"errors"

	"github.com/MR-PROSTER/Expensync/internal/dto"
	"github.com/MR-PROSTER/Expensync/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask a question about a document
// @Description Answer a question using retrieval over an indexed document. Pass index_name for an existing index or document_id to build one.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question and index reference"
// @Security Bearer
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.ChatRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.chatService.Chat(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrIndexNotFound) || errors.Is(err, service.ErrDocumentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Chat failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to answer question",
		})
	}

	return c.JSON(resp)
}

// DeleteIndex godoc
// @Summary Delete a chat index
// @Description Purge an index immediately when possible; otherwise it is removed during shutdown
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.DeleteIndexRequest true "Index to delete"
// @Security Bearer
// @Success 200 {object} dto.DeleteIndexResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/chat/index/delete [post]
func (h *ChatHandler) DeleteIndex(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.DeleteIndexRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	purged, err := h.chatService.MarkForDeletion(c.Context(), req.IndexName)
	if err != nil {
		h.logger.Error("Index deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete index",
		})
	}

	message := "Index marked for deletion"
	if purged {
		message = "Index deleted"
	}

	return c.JSON(dto.DeleteIndexResponse{
		Message: message,
		Purged:  purged,
	})
}
