package department_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/department"
	departmenterrors "github.com/Bhavesh2823/Empora/internal/department/errors"
	departmentMock "github.com/Bhavesh2823/Empora/internal/department/mock"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := departmentMock.NewMockRepository(ctrl)
	service := department.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, dept *department.Department) error {
				dept.ID = 3
				return nil
			})

		resp, err := service.Create(ctx, nil, department.CreateDepartmentRequest{DepartmentName: "Engineering"})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "Engineering", resp.DepartmentName)
	})

	t.Run("Duplicate Name", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := service.Create(ctx, nil, department.CreateDepartmentRequest{DepartmentName: "Engineering"})
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentExists)
	})
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := departmentMock.NewMockRepository(ctrl)
	service := department.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo.EXPECT().
			Delete(ctx, gomock.Any(), int64(3)).
			Return(int64(1), nil)

		assert.NoError(t, service.Delete(ctx, nil, 3))
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.EXPECT().
			Delete(ctx, gomock.Any(), int64(99)).
			Return(int64(0), nil)

		err := service.Delete(ctx, nil, 99)
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := departmentMock.NewMockRepository(ctrl)
	service := department.NewService(mockRepo)
	ctx := context.Background()

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(7)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Update(ctx, nil, 7, department.UpdateDepartmentRequest{DepartmentName: "Sales"})
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		existing := &department.Department{ID: 7, DepartmentName: "Sales"}

		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(7)).
			Return(existing, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any(), existing).
			Return(nil)

		resp, err := service.Update(ctx, nil, 7, department.UpdateDepartmentRequest{DepartmentName: "Field Sales"})

		assert.NoError(t, err)
		assert.Equal(t, "Field Sales", resp.DepartmentName)
	})
}
