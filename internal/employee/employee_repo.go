package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, emp *Employee) error
	SeedLeaveBalance(ctx context.Context, db *gorm.DB, employeeID int64) error
	FindAll(ctx context.Context, db *gorm.DB, page, limit int) ([]Employee, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, db *gorm.DB, emailCiphertext string) (*Employee, error)
	Update(ctx context.Context, db *gorm.DB, emp *Employee) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, emp *Employee) error {
	return db.WithContext(ctx).Create(emp).Error
}

// SeedLeaveBalance opens the employee's yearly allowance row. Column
// defaults carry the opening balances.
func (r *repository) SeedLeaveBalance(ctx context.Context, db *gorm.DB, employeeID int64) error {
	return db.WithContext(ctx).
		Exec("INSERT INTO leave_balances (employee_id) VALUES (?)", employeeID).Error
}

func (r *repository) FindAll(ctx context.Context, db *gorm.DB, page, limit int) ([]Employee, int64, error) {
	var emps []Employee
	var total int64

	if err := db.WithContext(ctx).Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&emps).Error
	return emps, total, err
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*Employee, error) {
	var emp Employee
	if err := db.WithContext(ctx).First(&emp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByEmail(ctx context.Context, db *gorm.DB, emailCiphertext string) (*Employee, error) {
	var emp Employee
	if err := db.WithContext(ctx).Where("email = ?", emailCiphertext).First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, emp *Employee) error {
	return db.WithContext(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
