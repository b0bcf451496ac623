package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
	"github.com/Bhavesh2823/Empora/internal/shared/contextutil"
	"github.com/Bhavesh2823/Empora/internal/shared/response"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

// TenantBinder resolves the store named by the verified db_name claim and
// binds its handle to the request. Runs after AuthMiddleware; every tenant
// route relies on the handle it binds. A token without a db_name claim
// cannot reach tenant data.
func TenantBinder(router *tenantdb.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbName := c.GetString("db_name")
		if dbName == "" {
			response.Error(c, http.StatusForbidden, apperror.CodeUnknownTenant, "Token carries no tenant store", nil)
			c.Abort()
			return
		}

		db, err := router.Resolve(c.Request.Context(), dbName)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		tenantdb.BindHandle(c, db)

		ctx := contextutil.WithStoreName(c.Request.Context(), dbName)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
