package superuser

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Bhavesh2823/Empora/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	su := r.Group("/superusers")

	// Login is the only unauthenticated route; registering a new operator
	// requires an existing superuser token.
	su.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), h.Login)

	protected := su.Group("")
	protected.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(RoleSuperuser))
	{
		protected.POST("", h.Register)
		protected.GET("", h.GetAll)
	}
}
