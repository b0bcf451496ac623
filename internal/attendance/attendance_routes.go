package attendance

import (
	"github.com/gin-gonic/gin"

	"github.com/Bhavesh2823/Empora/internal/middleware"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, router *tenantdb.Router) {
	atts := r.Group("/attendance")
	atts.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin", "superadmin", "employee"), middleware.TenantBinder(router))
	{
		atts.POST("/check-in", h.CheckIn)
		atts.POST("/check-out", h.CheckOut)
		atts.GET("/employee/:employeeId", h.GetByEmployee)
		atts.GET("", h.GetByDate)
	}
}
