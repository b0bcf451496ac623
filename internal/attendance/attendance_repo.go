package attendance

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, att *Attendance) error
	FindOpenByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) (*Attendance, error)
	CloseEntry(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
	FindByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]Attendance, error)
	FindByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]Attendance, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, att *Attendance) error {
	return db.WithContext(ctx).Create(att).Error
}

func (r *repository) FindOpenByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) (*Attendance, error) {
	var att Attendance
	err := db.WithContext(ctx).
		Where("employee_id = ? AND check_out_time IS NULL", employeeID).
		Order("check_in_time DESC").
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *repository) CloseEntry(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&Attendance{}).
		Where("id = ?", id).
		Update("check_out_time", at).Error
}

func (r *repository) FindByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]Attendance, error) {
	var atts []Attendance
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("check_in_time DESC").
		Find(&atts).Error
	return atts, err
}

func (r *repository) FindByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]Attendance, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var atts []Attendance
	err := db.WithContext(ctx).
		Where("check_in_time >= ? AND check_in_time < ?", start, end).
		Order("check_in_time ASC").
		Find(&atts).Error
	return atts, err
}
