package admin

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/Bhavesh2823/Empora/internal/middleware"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, router *tenantdb.Router) {
	a := r.Group("/admin")

	a.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), h.Login)

	protected := a.Group("")
	protected.Use(middleware.AuthMiddleware(), middleware.TenantBinder(router))
	{
		protected.GET("/me", h.Me)
	}
}
