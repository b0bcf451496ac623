package admin

import "time"

// Admin is a tenant administrator account. Rows live in the tenant's own
// store, never on the registry. Name and Email hold ciphertext.
type Admin struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:text;not null"`
	Email     string `gorm:"type:text;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:20;not null;default:admin"`
	CreatedAt time.Time
}

func (Admin) TableName() string {
	return "admins"
}

const RoleAdmin = "admin"
