package leave

import "time"

const (
	TypeCasual = "casual"
	TypeSick   = "sick"
	TypeEarned = "earned"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Leave struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID      int64     `gorm:"not null"`
	LeaveType       string    `gorm:"size:20;not null"`
	FromDate        time.Time `gorm:"type:date;not null"`
	ToDate          time.Time `gorm:"type:date;not null"`
	HalfDay         bool      `gorm:"not null;default:false"`
	Reason          *string   `gorm:"type:text"`
	RejectionReason *string   `gorm:"type:text"`
	Status          string    `gorm:"size:20;not null;default:pending"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Leave) TableName() string {
	return "leaves"
}

// Days returns the debit for this request, counting both endpoints. A half
// day still costs a full unit because balances are whole numbers.
func (l *Leave) Days() int {
	days := int(l.ToDate.Sub(l.FromDate).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// LeaveBalance holds the remaining yearly allowance per employee. A row is
// opened when the employee is created and only ever decremented here.
type LeaveBalance struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	EmployeeID  int64 `gorm:"not null"`
	CasualLeave int   `gorm:"not null;default:10"`
	SickLeave   int   `gorm:"not null;default:8"`
	EarnedLeave int   `gorm:"not null;default:5"`
	UpdatedAt   time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// Remaining returns the balance for one leave type.
func (b *LeaveBalance) Remaining(leaveType string) int {
	switch leaveType {
	case TypeCasual:
		return b.CasualLeave
	case TypeSick:
		return b.SickLeave
	case TypeEarned:
		return b.EarnedLeave
	}
	return 0
}
