package employee

import "time"

const (
	StatusActive     = "active"
	StatusResigned   = "resigned"
	StatusTerminated = "terminated"
)

// Employee lives in a tenant store. Email, Phone and Address hold
// ciphertext; the unique index on email works because equal plaintext
// always encrypts to equal ciphertext.
type Employee struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	FirstName       string  `gorm:"size:100;not null"`
	LastName        string  `gorm:"size:100;not null"`
	Email           string  `gorm:"type:text;uniqueIndex;not null"`
	Phone           *string `gorm:"type:text"`
	Address         *string `gorm:"type:text"`
	ProfilePicture  *string `gorm:"size:255"`
	Status          string  `gorm:"size:20;not null;default:active"`
	DepartmentID    *int64
	RoleID          *int64
	HireDate        *time.Time `gorm:"type:date"`
	TerminationDate *time.Time `gorm:"type:date"`
	DocumentAadhar  *string    `gorm:"size:255"`
	DocumentPan     *string    `gorm:"size:255"`
	DocumentLicence *string    `gorm:"size:255"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
