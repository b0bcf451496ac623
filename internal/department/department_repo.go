package department

import (
	"context"

	"gorm.io/gorm"
)

// The handle is a per-request argument: which tenant store a query runs
// against is decided by the binder, not at construction time.
//
//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, db *gorm.DB, dept *Department) error
	FindAll(ctx context.Context, db *gorm.DB) ([]Department, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Department, error)
	Update(ctx context.Context, db *gorm.DB, dept *Department) error
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(ctx context.Context, db *gorm.DB, dept *Department) error {
	return db.WithContext(ctx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context, db *gorm.DB) ([]Department, error) {
	var depts []Department
	err := db.WithContext(ctx).Order("department_name ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, db *gorm.DB, id int64) (*Department, error) {
	var dept Department
	if err := db.WithContext(ctx).First(&dept, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, db *gorm.DB, dept *Department) error {
	return db.WithContext(ctx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	res := db.WithContext(ctx).Delete(&Department{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
