// Package handler provides the HTTP handlers for the messages feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"messagely_backend/internal/api"
	jwtmw "messagely_backend/internal/platform/jwt"

	"messagely_backend/internal/feature/messages/domain/entity"
	"messagely_backend/internal/feature/messages/transport/http/dto"
	"messagely_backend/internal/feature/messages/usecase"
)

// MessageUsecase defines the usecase operations for messages. Every method
// takes the authenticated caller; authorization happens below this interface.
type MessageUsecase interface {
	Send(ctx context.Context, caller, toUsername, body string) (*entity.Message, error)
	Get(ctx context.Context, caller string, id uint) (*entity.Message, error)
	ListFrom(ctx context.Context, caller, username string) ([]entity.Message, error)
	ListTo(ctx context.Context, caller, username string) ([]entity.Message, error)
	MarkRead(ctx context.Context, caller string, id uint) (*time.Time, error)
}

// MessageHandler handles HTTP requests for message operations.
type MessageHandler struct {
	messages MessageUsecase
}

// NewMessageHandler creates a new MessageHandler instance.
func NewMessageHandler(messages MessageUsecase) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send handles POST /messages. The sender is the authenticated caller.
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("send validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "to_username and body are required"})
		return
	}

	caller := jwtmw.CallerUsername(c)
	m, err := h.messages.Send(c.Request.Context(), caller, req.ToUsername, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyBody), errors.Is(err, usecase.ErrUnknownRecipient):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("send failed", "error", err, "caller", caller)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	slog.Info("message sent", "id", m.ID, "from", m.FromUsername, "to", m.ToUsername)
	c.JSON(http.StatusCreated, gin.H{"message": m})
}

// Get handles GET /messages/:id. Participants only.
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := h.messageID(c)
	if !ok {
		return
	}

	caller := jwtmw.CallerUsername(c)
	m, err := h.messages.Get(c.Request.Context(), caller, id)
	if err != nil {
		h.renderError(c, err, caller, id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": m})
}

// ListFrom handles GET /users/:username/from: messages sent by the user.
func (h *MessageHandler) ListFrom(c *gin.Context) {
	h.list(c, h.messages.ListFrom)
}

// ListTo handles GET /users/:username/to: messages received by the user.
func (h *MessageHandler) ListTo(c *gin.Context) {
	h.list(c, h.messages.ListTo)
}

func (h *MessageHandler) list(c *gin.Context, fn func(ctx context.Context, caller, username string) ([]entity.Message, error)) {
	username := c.Param("username")
	caller := jwtmw.CallerUsername(c)

	msgs, err := fn(c.Request.Context(), caller, username)
	if err != nil {
		if errors.Is(err, usecase.ErrForbidden) {
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not entitled to this resource"})
			return
		}
		slog.Error("message list failed", "error", err, "caller", caller, "username", username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	if msgs == nil {
		msgs = []entity.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MarkRead handles POST /messages/:id/read. Recipient only; idempotent.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := h.messageID(c)
	if !ok {
		return
	}

	caller := jwtmw.CallerUsername(c)
	readAt, err := h.messages.MarkRead(c.Request.Context(), caller, id)
	if err != nil {
		h.renderError(c, err, caller, id)
		return
	}

	slog.Info("message marked read", "id", id, "caller", caller)
	c.JSON(http.StatusOK, gin.H{"message": gin.H{"id": id, "read_at": readAt}})
}

// messageID parses the :id path parameter, rendering a 404 for garbage input
// since no message can have a non-numeric id.
func (h *MessageHandler) messageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "message not found"})
		return 0, false
	}
	return uint(id), true
}

func (h *MessageHandler) renderError(c *gin.Context, err error, caller string, id uint) {
	switch {
	case errors.Is(err, usecase.ErrMessageNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "message not found"})
	case errors.Is(err, usecase.ErrForbidden):
		slog.Warn("message access denied", "caller", caller, "id", id)
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not entitled to this resource"})
	default:
		slog.Error("message operation failed", "error", err, "caller", caller, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
