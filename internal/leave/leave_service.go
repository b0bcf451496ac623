package leave

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "github.com/Bhavesh2823/Empora/internal/employee/errors"
	leaveerrors "github.com/Bhavesh2823/Empora/internal/leave/errors"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, db *gorm.DB, req ApplyLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, db *gorm.DB, id int64) (LeaveResponse, error)
	Reject(ctx context.Context, db *gorm.DB, id int64, req RejectLeaveRequest) (LeaveResponse, error)
	GetByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]LeaveResponse, error)
	GetPending(ctx context.Context, db *gorm.DB) ([]LeaveResponse, error)
	GetBalance(ctx context.Context, db *gorm.DB, employeeID int64) (LeaveBalanceResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Apply(ctx context.Context, db *gorm.DB, req ApplyLeaveRequest) (LeaveResponse, error) {
	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if from.After(to) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	lv := &Leave{
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		FromDate:   from,
		ToDate:     to,
		HalfDay:    req.HalfDay,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	// The balance check happens at approval, not here: a pending request
	// must not block other requests from being filed.
	if err := s.repo.Create(ctx, db, lv); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return LeaveResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	return toResponse(lv), nil
}

// Approve flips the request to approved and debits the balance in one
// transaction, with the balance row locked against concurrent approvals.
func (s *service) Approve(ctx context.Context, db *gorm.DB, id int64) (LeaveResponse, error) {
	var approved *Leave

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lv, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if lv.Status != StatusPending {
			return leaveerrors.ErrAlreadyDecided
		}

		balance, err := s.repo.BalanceForUpdate(ctx, tx, lv.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrBalanceNotFound
			}
			return err
		}

		days := lv.Days()
		if balance.Remaining(lv.LeaveType) < days {
			return leaveerrors.ErrInsufficientBalance
		}

		switch lv.LeaveType {
		case TypeCasual:
			balance.CasualLeave -= days
		case TypeSick:
			balance.SickLeave -= days
		case TypeEarned:
			balance.EarnedLeave -= days
		}

		if err := s.repo.UpdateBalance(ctx, tx, balance); err != nil {
			return err
		}

		lv.Status = StatusApproved
		if err := s.repo.Update(ctx, tx, lv); err != nil {
			return err
		}

		approved = lv
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	return toResponse(approved), nil
}

func (s *service) Reject(ctx context.Context, db *gorm.DB, id int64, req RejectLeaveRequest) (LeaveResponse, error) {
	lv, err := s.repo.FindByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if lv.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	lv.Status = StatusRejected
	lv.RejectionReason = &req.RejectionReason

	if err := s.repo.Update(ctx, db, lv); err != nil {
		return LeaveResponse{}, err
	}
	return toResponse(lv), nil
}

func (s *service) GetByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]LeaveResponse, error) {
	lvs, err := s.repo.FindByEmployee(ctx, db, employeeID)
	if err != nil {
		return nil, err
	}
	return toListResponse(lvs), nil
}

func (s *service) GetPending(ctx context.Context, db *gorm.DB) ([]LeaveResponse, error) {
	lvs, err := s.repo.FindByStatus(ctx, db, StatusPending)
	if err != nil {
		return nil, err
	}
	return toListResponse(lvs), nil
}

func (s *service) GetBalance(ctx context.Context, db *gorm.DB, employeeID int64) (LeaveBalanceResponse, error) {
	b, err := s.repo.GetBalance(ctx, db, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveBalanceResponse{}, leaveerrors.ErrBalanceNotFound
		}
		return LeaveBalanceResponse{}, err
	}
	return LeaveBalanceResponse{
		EmployeeID:  b.EmployeeID,
		CasualLeave: b.CasualLeave,
		SickLeave:   b.SickLeave,
		EarnedLeave: b.EarnedLeave,
	}, nil
}

func toResponse(lv *Leave) LeaveResponse {
	return LeaveResponse{
		ID:              lv.ID,
		EmployeeID:      lv.EmployeeID,
		LeaveType:       lv.LeaveType,
		FromDate:        lv.FromDate.Format(dateLayout),
		ToDate:          lv.ToDate.Format(dateLayout),
		HalfDay:         lv.HalfDay,
		Days:            lv.Days(),
		Reason:          lv.Reason,
		RejectionReason: lv.RejectionReason,
		Status:          lv.Status,
	}
}

func toListResponse(lvs []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(lvs))
	for i := range lvs {
		res[i] = toResponse(&lvs[i])
	}
	return res
}
