package superuser

import (
	"time"

	"github.com/google/uuid"
)

// Superuser is a platform operator account. These live on the registry
// database and are the only principals allowed to manage tenants.
type Superuser struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Superuser) TableName() string {
	return "superusers"
}
