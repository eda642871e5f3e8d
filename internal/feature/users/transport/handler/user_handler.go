// Package handler provides the HTTP handlers for the users feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely_backend/internal/api"
	"messagely_backend/internal/feature/users/domain/entity"
	"messagely_backend/internal/feature/users/usecase"
)

// UserUsecase defines the usecase operations for profile reads.
type UserUsecase interface {
	List(ctx context.Context) ([]entity.Profile, error)
	Get(ctx context.Context, username string) (*entity.Profile, error)
}

// userSummary is the list-view projection: the original listing omits the
// timestamp fields.
type userSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// UserHandler handles HTTP requests for profile reads. All routes behind it
// require authentication; no further per-resource check applies because
// profiles are non-sensitive.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users, returning summaries of every registered user in
// insertion order.
func (h *UserHandler) List(c *gin.Context) {
	profiles, err := h.users.List(c.Request.Context())
	if err != nil {
		slog.Error("user list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	summaries := make([]userSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, userSummary{
			Username:  p.Username,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Phone:     p.Phone,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": summaries})
}

// Get handles GET /users/:username, returning the full profile detail.
func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("user get failed", "error", err, "username", username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}
