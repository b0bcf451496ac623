package client

import "time"

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

// Provisioning advances through these states one step at a time. The state
// is persisted on the registry row so a failed run can be resumed from the
// last completed step instead of being rolled back.
const (
	StateRegistered    = "registered"
	StateStoreCreated  = "store_created"
	StateSchemaApplied = "schema_applied"
	StateSeeded        = "seeded"
	StateActive        = "active"
)

// Client is a registry row. company_name, admin_email, phone, address and
// db_name hold ciphertext produced by the field codec; agreement_file_path
// and status are plaintext. IDs come from the allocator, never from the
// database sequence, so they stay monotonic across the whole platform.
type Client struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement:false"`
	CompanyName       string    `gorm:"column:company_name;type:text;not null"`
	AdminEmail        string    `gorm:"column:admin_email;type:text;not null"`
	Phone             string    `gorm:"column:phone;type:text"`
	Address           string    `gorm:"column:address;type:text"`
	DBName            string    `gorm:"column:db_name;type:text;not null"`
	AgreementFilePath *string   `gorm:"column:agreement_file_path;type:varchar(255)"`
	Status            string    `gorm:"column:status;type:varchar(20);not null;default:active"`
	ProvisionState    string    `gorm:"column:provision_state;type:varchar(20);not null;default:registered"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:now()"`
}

func (Client) TableName() string {
	return "clients"
}

// RegistryConfig is the single-row allocation counter (id = 1). It is
// created by operator bootstrap, never by application code.
type RegistryConfig struct {
	ID           int64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	LastClientID int64 `gorm:"column:last_client_id;not null"`
}

func (RegistryConfig) TableName() string {
	return "config"
}
