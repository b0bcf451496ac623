package client

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Bhavesh2823/Empora/internal/middleware"
)

// Registry management is a platform-operator surface: everything here
// requires a superuser token.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	clients := r.Group("/clients")

	clients.Use(middleware.AuthMiddleware())
	clients.Use(middleware.RoleMiddleware("superuser"))

	{
		clients.POST("", middleware.Idempotency(rdb), h.Register)
		clients.GET("", h.GetAll)
		clients.GET("/:id", h.GetByID)
		clients.PUT("/:id", h.Update)
		clients.DELETE("/:id", h.Delete)
		clients.POST("/:id/repair", h.Repair)
	}
}
