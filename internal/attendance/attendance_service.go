package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	attendanceerrors "github.com/Bhavesh2823/Empora/internal/attendance/errors"
	employeeerrors "github.com/Bhavesh2823/Empora/internal/employee/errors"
)

// Check-ins after this time of day are marked late.
const lateCutoff = "09:30"

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, db *gorm.DB, req CheckInRequest, clientIP string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, db *gorm.DB, req CheckOutRequest) (AttendanceResponse, error)
	GetByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]AttendanceResponse, error)
	GetByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]AttendanceResponse, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) CheckIn(ctx context.Context, db *gorm.DB, req CheckInRequest, clientIP string) (AttendanceResponse, error) {
	if _, err := s.repo.FindOpenByEmployee(ctx, db, req.EmployeeID); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	now := s.now()
	att := &Attendance{
		EmployeeID:  req.EmployeeID,
		CheckInTime: now,
		PhotoURL:    req.PhotoURL,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      statusFor(now),
		DeviceInfo:  req.DeviceInfo,
	}
	if clientIP != "" {
		att.IPAddress = &clientIP
	}

	if err := s.repo.Create(ctx, db, att); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return AttendanceResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AttendanceResponse{}, err
	}

	return toResponse(att), nil
}

func (s *service) CheckOut(ctx context.Context, db *gorm.DB, req CheckOutRequest) (AttendanceResponse, error) {
	att, err := s.repo.FindOpenByEmployee(ctx, db, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoOpenAttendance
		}
		return AttendanceResponse{}, err
	}

	now := s.now()
	if err := s.repo.CloseEntry(ctx, db, att.ID, now); err != nil {
		return AttendanceResponse{}, err
	}

	att.CheckOutTime = &now
	return toResponse(att), nil
}

func (s *service) GetByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]AttendanceResponse, error) {
	atts, err := s.repo.FindByEmployee(ctx, db, employeeID)
	if err != nil {
		return nil, err
	}
	return toListResponse(atts), nil
}

func (s *service) GetByDate(ctx context.Context, db *gorm.DB, day time.Time) ([]AttendanceResponse, error) {
	atts, err := s.repo.FindByDate(ctx, db, day)
	if err != nil {
		return nil, err
	}
	return toListResponse(atts), nil
}

func statusFor(checkIn time.Time) string {
	cutoff, _ := time.Parse("15:04", lateCutoff)
	if checkIn.Hour() > cutoff.Hour() ||
		(checkIn.Hour() == cutoff.Hour() && checkIn.Minute() > cutoff.Minute()) {
		return StatusLate
	}
	return StatusPresent
}

func toResponse(att *Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          att.ID,
		EmployeeID:  att.EmployeeID,
		CheckInTime: att.CheckInTime.Format(time.RFC3339),
		PhotoURL:    att.PhotoURL,
		Latitude:    att.Latitude,
		Longitude:   att.Longitude,
		Status:      att.Status,
	}
	if att.CheckOutTime != nil {
		out := att.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &out
	}
	return resp
}

func toListResponse(atts []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(atts))
	for i := range atts {
		res[i] = toResponse(&atts[i])
	}
	return res
}
