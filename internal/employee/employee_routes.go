package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/Bhavesh2823/Empora/internal/middleware"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, router *tenantdb.Router) {
	emps := r.Group("/employees")
	emps.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin", "superadmin"), middleware.TenantBinder(router))
	{
		emps.POST("", h.Create)
		emps.GET("", h.GetAll)
		emps.GET("/:id", h.GetByID)
		emps.PUT("/:id", h.Update)
		emps.DELETE("/:id", h.Delete)
	}
}
