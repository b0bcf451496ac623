package tenantdb

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// handleKey is where the binder middleware parks the scoped handle for the
// duration of one request.
const handleKey = "tenant_db_handle"

func BindHandle(c *gin.Context, db *gorm.DB) {
	c.Set(handleKey, db)
}

// FromContext returns the scoped handle bound to this request, if any.
// Handlers on tenant routes can assume it is present because the binder
// middleware aborts the request otherwise.
func FromContext(c *gin.Context) (*gorm.DB, bool) {
	v, ok := c.Get(handleKey)
	if !ok {
		return nil, false
	}
	db, ok := v.(*gorm.DB)
	return db, ok
}
