package admin

import (
	"context"

	"gorm.io/gorm"
)

// Repository methods take the store handle explicitly: which store the
// query runs against is decided per request, not when the repository is
// built.
//
//go:generate mockgen -source=admin_repo.go -destination=mock/admin_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, db *gorm.DB, emailCiphertext string) (*Admin, error)
	GetByID(ctx context.Context, db *gorm.DB, id int64) (*Admin, error)
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) GetByEmail(ctx context.Context, db *gorm.DB, emailCiphertext string) (*Admin, error) {
	var a Admin
	if err := db.WithContext(ctx).Where("email = ?", emailCiphertext).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByID(ctx context.Context, db *gorm.DB, id int64) (*Admin, error) {
	var a Admin
	if err := db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
