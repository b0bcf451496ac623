package attendance

import "time"

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

type Attendance struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	EmployeeID   int64      `gorm:"not null"`
	CheckInTime  time.Time  `gorm:"autoCreateTime"`
	CheckOutTime *time.Time
	PhotoURL     string  `gorm:"size:255;not null"`
	Latitude     float64 `gorm:"type:decimal(10,8);not null"`
	Longitude    float64 `gorm:"type:decimal(11,8);not null"`
	Status       string  `gorm:"size:20;not null;default:present"`
	IPAddress    *string `gorm:"size:50"`
	DeviceInfo   *string `gorm:"size:255"`
	CreatedAt    time.Time
}

func (Attendance) TableName() string {
	return "attendance"
}
