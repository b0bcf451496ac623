package department

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	departmenterrors "github.com/Bhavesh2823/Empora/internal/department/errors"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, db *gorm.DB, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, db *gorm.DB) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, id int64) (DepartmentResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, db *gorm.DB, req CreateDepartmentRequest) (DepartmentResponse, error) {
	dept := &Department{DepartmentName: req.DepartmentName}

	if err := s.repo.Create(ctx, db, dept); err != nil {
		return DepartmentResponse{}, mapRepoError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, db *gorm.DB) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx, db)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, db *gorm.DB, id int64) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return DepartmentResponse{}, mapRepoError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, db *gorm.DB, id int64, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return DepartmentResponse{}, mapRepoError(err)
	}

	dept.DepartmentName = req.DepartmentName
	if err := s.repo.Update(ctx, db, dept); err != nil {
		return DepartmentResponse{}, mapRepoError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	rows, err := s.repo.Delete(ctx, db, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return departmenterrors.ErrDepartmentNotFound
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return departmenterrors.ErrDepartmentExists
	}
	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             dept.ID,
		DepartmentName: dept.DepartmentName,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
