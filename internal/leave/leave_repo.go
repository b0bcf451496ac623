package leave

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, lv *Leave) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Leave, error)
	FindByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]Leave, error)
	FindByStatus(ctx context.Context, db *gorm.DB, status string) ([]Leave, error)
	Update(ctx context.Context, db *gorm.DB, lv *Leave) error

	BalanceForUpdate(ctx context.Context, db *gorm.DB, employeeID int64) (*LeaveBalance, error)
	GetBalance(ctx context.Context, db *gorm.DB, employeeID int64) (*LeaveBalance, error)
	UpdateBalance(ctx context.Context, db *gorm.DB, b *LeaveBalance) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, lv *Leave) error {
	return db.WithContext(ctx).Create(lv).Error
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*Leave, error) {
	var lv Leave
	if err := db.WithContext(ctx).First(&lv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &lv, nil
}

func (r *repository) FindByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]Leave, error) {
	var lvs []Leave
	err := db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&lvs).Error
	return lvs, err
}

func (r *repository) FindByStatus(ctx context.Context, db *gorm.DB, status string) ([]Leave, error) {
	var lvs []Leave
	err := db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&lvs).Error
	return lvs, err
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, lv *Leave) error {
	return db.WithContext(ctx).Save(lv).Error
}

// BalanceForUpdate locks the balance row so two approvals cannot both read
// the same remaining count.
func (r *repository) BalanceForUpdate(ctx context.Context, db *gorm.DB, employeeID int64) (*LeaveBalance, error) {
	var b LeaveBalance
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetBalance(ctx context.Context, db *gorm.DB, employeeID int64) (*LeaveBalance, error) {
	var b LeaveBalance
	if err := db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateBalance(ctx context.Context, db *gorm.DB, b *LeaveBalance) error {
	return db.WithContext(ctx).Save(b).Error
}
