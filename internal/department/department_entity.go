package department

import "time"

type Department struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	DepartmentName string    `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Department) TableName() string {
	return "departments"
}
