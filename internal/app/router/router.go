package router

import (
	"github.com/gin-gonic/gin"

	authhandler "messagely_backend/internal/feature/auth/transport/handler"
	messagehandler "messagely_backend/internal/feature/messages/transport/handler"
	userhandler "messagely_backend/internal/feature/users/transport/handler"
	"messagely_backend/internal/platform/http/handler"
	jwtmw "messagely_backend/internal/platform/jwt"
)

// NewRouter builds the Gin engine with the public endpoints and the
// token-protected group. jwtSecret is injected from configuration.
func NewRouter(auth *authhandler.AuthHandler, users *userhandler.UserHandler,
	messages *messagehandler.MessageHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()

	// No authentication required
	r.GET("/healthz", handler.Health)
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)

	// Everything else requires a valid bearer token
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(jwtSecret))
	{
		protected.GET("/users", users.List)
		protected.GET("/users/:username", users.Get)
		protected.GET("/users/:username/from", messages.ListFrom)
		protected.GET("/users/:username/to", messages.ListTo)

		protected.GET("/messages/:id", messages.Get)
		protected.POST("/messages", messages.Send)
		protected.POST("/messages/:id/read", messages.MarkRead)
	}

	return r
}
