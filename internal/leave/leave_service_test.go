package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Bhavesh2823/Empora/internal/leave"
	leaveerrors "github.com/Bhavesh2823/Empora/internal/leave/errors"
	leaveMock "github.com/Bhavesh2823/Empora/internal/leave/mock"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gdb, mock
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := leaveMock.NewMockRepository(ctrl)
	service := leave.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, lv *leave.Leave) error {
				assert.Equal(t, leave.StatusPending, lv.Status)
				lv.ID = 1
				return nil
			})

		resp, err := service.Apply(ctx, nil, leave.ApplyLeaveRequest{
			EmployeeID: 5,
			LeaveType:  leave.TypeCasual,
			FromDate:   "2025-06-02",
			ToDate:     "2025-06-04",
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Days)
		assert.Equal(t, leave.StatusPending, resp.Status)
	})

	t.Run("Inverted Date Range", func(t *testing.T) {
		_, err := service.Apply(ctx, nil, leave.ApplyLeaveRequest{
			EmployeeID: 5,
			LeaveType:  leave.TypeCasual,
			FromDate:   "2025-06-04",
			ToDate:     "2025-06-02",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})
}

func TestService_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := leaveMock.NewMockRepository(ctrl)
	service := leave.NewService(mockRepo)
	ctx := context.Background()

	pending := func() *leave.Leave {
		return &leave.Leave{
			ID:         1,
			EmployeeID: 5,
			LeaveType:  leave.TypeCasual,
			FromDate:   date("2025-06-02"),
			ToDate:     date("2025-06-04"),
			Status:     leave.StatusPending,
		}
	}

	t.Run("Success Debits Balance", func(t *testing.T) {
		gdb, mock := newMockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(1)).
			Return(pending(), nil)
		mockRepo.EXPECT().
			BalanceForUpdate(ctx, gomock.Any(), int64(5)).
			Return(&leave.LeaveBalance{EmployeeID: 5, CasualLeave: 10, SickLeave: 8, EarnedLeave: 5}, nil)
		mockRepo.EXPECT().
			UpdateBalance(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, b *leave.LeaveBalance) error {
				assert.Equal(t, 7, b.CasualLeave)
				return nil
			})
		mockRepo.EXPECT().
			Update(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, lv *leave.Leave) error {
				assert.Equal(t, leave.StatusApproved, lv.Status)
				return nil
			})

		resp, err := service.Approve(ctx, gdb, 1)

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Balance Rolls Back", func(t *testing.T) {
		gdb, mock := newMockGorm(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(1)).
			Return(pending(), nil)
		mockRepo.EXPECT().
			BalanceForUpdate(ctx, gomock.Any(), int64(5)).
			Return(&leave.LeaveBalance{EmployeeID: 5, CasualLeave: 2}, nil)

		_, err := service.Approve(ctx, gdb, 1)

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already Decided", func(t *testing.T) {
		gdb, mock := newMockGorm(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		decided := pending()
		decided.Status = leave.StatusApproved

		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(1)).
			Return(decided, nil)

		_, err := service.Approve(ctx, gdb, 1)

		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_Reject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := leaveMock.NewMockRepository(ctrl)
	service := leave.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(1)).
			Return(&leave.Leave{ID: 1, EmployeeID: 5, LeaveType: leave.TypeSick, FromDate: date("2025-06-02"), ToDate: date("2025-06-02"), Status: leave.StatusPending}, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any(), gomock.Any()).
			Return(nil)

		resp, err := service.Reject(ctx, nil, 1, leave.RejectLeaveRequest{RejectionReason: "Project deadline"})

		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "Project deadline", *resp.RejectionReason)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(9)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Reject(ctx, nil, 9, leave.RejectLeaveRequest{RejectionReason: "n/a"})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeave_Days(t *testing.T) {
	lv := &leave.Leave{FromDate: date("2025-06-02"), ToDate: date("2025-06-02")}
	assert.Equal(t, 1, lv.Days())

	lv.ToDate = date("2025-06-06")
	assert.Equal(t, 5, lv.Days())
}
