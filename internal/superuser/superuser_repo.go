package superuser

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=superuser_repo.go -destination=mock/superuser_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, su *Superuser) error
	GetByEmail(ctx context.Context, email string) (*Superuser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Superuser, error)
	FindAll(ctx context.Context) ([]Superuser, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, su *Superuser) error {
	return r.db.WithContext(ctx).Create(su).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Superuser, error) {
	var su Superuser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&su).Error; err != nil {
		return nil, err
	}
	return &su, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Superuser, error) {
	var su Superuser
	if err := r.db.WithContext(ctx).First(&su, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &su, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Superuser, error) {
	var sus []Superuser
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&sus).Error; err != nil {
		return nil, err
	}
	return sus, nil
}
