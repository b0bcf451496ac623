package leave

import (
	"github.com/gin-gonic/gin"

	"github.com/Bhavesh2823/Empora/internal/middleware"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, router *tenantdb.Router) {
	lvs := r.Group("/leaves")
	lvs.Use(middleware.AuthMiddleware(), middleware.TenantBinder(router))
	{
		lvs.POST("", middleware.RoleMiddleware("admin", "superadmin", "employee"), h.Apply)
		lvs.GET("/employee/:employeeId", middleware.RoleMiddleware("admin", "superadmin", "employee"), h.GetByEmployee)
		lvs.GET("/balance/:employeeId", middleware.RoleMiddleware("admin", "superadmin", "employee"), h.GetBalance)

		// Deciding a request is an admin action.
		lvs.GET("/pending", middleware.RoleMiddleware("admin", "superadmin"), h.GetPending)
		lvs.PUT("/:id/approve", middleware.RoleMiddleware("admin", "superadmin"), h.Approve)
		lvs.PUT("/:id/reject", middleware.RoleMiddleware("admin", "superadmin"), h.Reject)
	}
}
