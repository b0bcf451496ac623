package attendance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/attendance"
	attendanceerrors "github.com/Bhavesh2823/Empora/internal/attendance/errors"
	attendanceMock "github.com/Bhavesh2823/Empora/internal/attendance/mock"
)

func TestService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := attendanceMock.NewMockRepository(ctrl)
	service := attendance.NewService(mockRepo)
	ctx := context.Background()

	req := attendance.CheckInRequest{
		EmployeeID: 5,
		PhotoURL:   "https://cdn.example/p.jpg",
		Latitude:   12.9716,
		Longitude:  77.5946,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			FindOpenByEmployee(ctx, gomock.Any(), int64(5)).
			Return(nil, gorm.ErrRecordNotFound)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, att *attendance.Attendance) error {
				assert.Equal(t, int64(5), att.EmployeeID)
				require.NotNil(t, att.IPAddress)
				assert.Equal(t, "10.0.0.9", *att.IPAddress)
				att.ID = 1
				return nil
			})

		resp, err := service.CheckIn(ctx, nil, req, "10.0.0.9")

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.NotEmpty(t, resp.CheckInTime)
	})

	t.Run("Already Checked In", func(t *testing.T) {
		mockRepo.EXPECT().
			FindOpenByEmployee(ctx, gomock.Any(), int64(5)).
			Return(&attendance.Attendance{ID: 1, EmployeeID: 5}, nil)

		_, err := service.CheckIn(ctx, nil, req, "")
		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})
}

func TestService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := attendanceMock.NewMockRepository(ctrl)
	service := attendance.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		open := &attendance.Attendance{ID: 1, EmployeeID: 5, Status: attendance.StatusPresent}

		mockRepo.EXPECT().
			FindOpenByEmployee(ctx, gomock.Any(), int64(5)).
			Return(open, nil)
		mockRepo.EXPECT().
			CloseEntry(ctx, gomock.Any(), int64(1), gomock.Any()).
			Return(nil)

		resp, err := service.CheckOut(ctx, nil, attendance.CheckOutRequest{EmployeeID: 5})

		require.NoError(t, err)
		require.NotNil(t, resp.CheckOutTime)
	})

	t.Run("No Open Entry", func(t *testing.T) {
		mockRepo.EXPECT().
			FindOpenByEmployee(ctx, gomock.Any(), int64(5)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := service.CheckOut(ctx, nil, attendance.CheckOutRequest{EmployeeID: 5})
		assert.ErrorIs(t, err, attendanceerrors.ErrNoOpenAttendance)
	})
}
