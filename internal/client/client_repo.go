package client

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Client) error
	// ExistsByCiphertext compares against the encrypted columns directly.
	// Equality only; the deterministic codec makes this possible.
	ExistsByCiphertext(ctx context.Context, companyName, adminEmail string) (bool, error)
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindAll(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) (int64, error)
	SetProvisionState(ctx context.Context, id int64, state string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) ExistsByCiphertext(ctx context.Context, companyName, adminEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Client{}).
		Where("company_name = ? OR admin_email = ?", companyName, adminEmail).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Client{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) SetProvisionState(ctx context.Context, id int64, state string) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", id).
		Update("provision_state", state).Error
}
