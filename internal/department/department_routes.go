package department

import (
	"github.com/gin-gonic/gin"

	"github.com/Bhavesh2823/Empora/internal/middleware"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, router *tenantdb.Router) {
	depts := r.Group("/departments")
	depts.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin", "superadmin"), middleware.TenantBinder(router))
	{
		depts.POST("", h.Create)
		depts.GET("", h.GetAll)
		depts.GET("/:id", h.GetByID)
		depts.PUT("/:id", h.Update)
		depts.DELETE("/:id", h.Delete)
	}
}
