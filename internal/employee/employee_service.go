package employee

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/Bhavesh2823/Empora/internal/employee/errors"
	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
	"github.com/Bhavesh2823/Empora/internal/shared/response"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, db *gorm.DB, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, db *gorm.DB, page, limit int) ([]EmployeeResponse, response.PaginationMeta, error)
	GetByID(ctx context.Context, db *gorm.DB, id int64) (EmployeeResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type service struct {
	repo  Repository
	codec *fieldcrypto.Codec
}

func NewService(repo Repository, codec *fieldcrypto.Codec) Service {
	return &service{repo: repo, codec: codec}
}

// Create inserts the employee and opens their leave balance in one
// transaction: an employee without a balance row would break leave
// approval later.
func (s *service) Create(ctx context.Context, db *gorm.DB, req CreateEmployeeRequest) (EmployeeResponse, error) {
	emp := &Employee{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Status:          StatusActive,
		DepartmentID:    req.DepartmentID,
		RoleID:          req.RoleID,
		DocumentAadhar:  req.DocumentAadhar,
		DocumentPan:     req.DocumentPan,
		DocumentLicence: req.DocumentLicence,
	}

	var err error
	if emp.Email, err = s.codec.Encrypt(req.Email); err != nil {
		return EmployeeResponse{}, err
	}
	if emp.Phone, err = s.encryptOptional(req.Phone); err != nil {
		return EmployeeResponse{}, err
	}
	if emp.Address, err = s.encryptOptional(req.Address); err != nil {
		return EmployeeResponse{}, err
	}

	if req.HireDate != nil {
		hd, err := time.Parse(dateLayout, *req.HireDate)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("Hire Date")
		}
		emp.HireDate = &hd
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, emp); err != nil {
			return err
		}
		return s.repo.SeedLeaveBalance(ctx, tx, emp.ID)
	})
	if err != nil {
		return EmployeeResponse{}, mapRepoError(err)
	}

	return s.toResponse(emp), nil
}

func (s *service) GetAll(ctx context.Context, db *gorm.DB, page, limit int) ([]EmployeeResponse, response.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	emps, total, err := s.repo.FindAll(ctx, db, page, limit)
	if err != nil {
		return nil, response.PaginationMeta{}, err
	}

	out := make([]EmployeeResponse, len(emps))
	for i := range emps {
		out[i] = s.toResponse(&emps[i])
	}
	return out, response.NewPaginationMeta(total, page, limit), nil
}

func (s *service) GetByID(ctx context.Context, db *gorm.DB, id int64) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return EmployeeResponse{}, mapRepoError(err)
	}
	return s.toResponse(emp), nil
}

// Update re-encrypts only the fields the request actually carries.
func (s *service) Update(ctx context.Context, db *gorm.DB, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		return EmployeeResponse{}, mapRepoError(err)
	}

	if req.FirstName != nil {
		emp.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		emp.LastName = *req.LastName
	}
	if req.Email != nil {
		if emp.Email, err = s.codec.Encrypt(*req.Email); err != nil {
			return EmployeeResponse{}, err
		}
	}
	if req.Phone != nil {
		if emp.Phone, err = s.encryptOptional(req.Phone); err != nil {
			return EmployeeResponse{}, err
		}
	}
	if req.Address != nil {
		if emp.Address, err = s.encryptOptional(req.Address); err != nil {
			return EmployeeResponse{}, err
		}
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = req.DepartmentID
	}
	if req.RoleID != nil {
		emp.RoleID = req.RoleID
	}
	if req.HireDate != nil {
		hd, err := time.Parse(dateLayout, *req.HireDate)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("Hire Date")
		}
		emp.HireDate = &hd
	}
	if req.TerminationDate != nil {
		td, err := time.Parse(dateLayout, *req.TerminationDate)
		if err != nil {
			return EmployeeResponse{}, apperror.InvalidField("Termination Date")
		}
		emp.TerminationDate = &td
	}
	if req.DocumentAadhar != nil {
		emp.DocumentAadhar = req.DocumentAadhar
	}
	if req.DocumentPan != nil {
		emp.DocumentPan = req.DocumentPan
	}
	if req.DocumentLicence != nil {
		emp.DocumentLicence = req.DocumentLicence
	}

	if err := s.repo.Update(ctx, db, emp); err != nil {
		return EmployeeResponse{}, mapRepoError(err)
	}
	return s.toResponse(emp), nil
}

func (s *service) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	rows, err := s.repo.Delete(ctx, db, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}

func (s *service) encryptOptional(plain *string) (*string, error) {
	if plain == nil || *plain == "" {
		return nil, nil
	}
	ct, err := s.codec.Encrypt(*plain)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (s *service) decryptOptional(ct *string) *string {
	if ct == nil {
		return nil
	}
	plain := s.codec.SafeDecrypt(*ct)
	return &plain
}

// Listings use SafeDecrypt: one corrupt row must not take out the whole
// response.
func (s *service) toResponse(emp *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             emp.ID,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		Email:          s.codec.SafeDecrypt(emp.Email),
		Phone:          s.decryptOptional(emp.Phone),
		Address:        s.decryptOptional(emp.Address),
		ProfilePicture: emp.ProfilePicture,
		Status:         emp.Status,
		DepartmentID:   emp.DepartmentID,
		RoleID:         emp.RoleID,
	}
	if emp.HireDate != nil {
		hd := emp.HireDate.Format(dateLayout)
		resp.HireDate = &hd
	}
	if emp.TerminationDate != nil {
		td := emp.TerminationDate.Format(dateLayout)
		resp.TerminationDate = &td
	}
	return resp
}

func mapRepoError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return employeeerrors.ErrEmailAlreadyUsed
		case "23503":
			return employeeerrors.ErrInvalidReference
		}
	}
	return err
}
