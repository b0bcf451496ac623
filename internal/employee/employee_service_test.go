package employee_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Bhavesh2823/Empora/internal/employee"
	employeeerrors "github.com/Bhavesh2823/Empora/internal/employee/errors"
	employeeMock "github.com/Bhavesh2823/Empora/internal/employee/mock"
	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
)

const (
	testKeyHex = "6368616e676520746869732070617373776f726420746f206120736563726574"
	testIVHex  = "6368616e67652074686973206976212e"
)

func newTestCodec(t *testing.T) *fieldcrypto.Codec {
	t.Helper()
	codec, err := fieldcrypto.New(testKeyHex, testIVHex, zap.NewNop())
	require.NoError(t, err)
	return codec
}

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

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	mockRepo := employeeMock.NewMockRepository(ctrl)
	service := employee.NewService(mockRepo, codec)
	ctx := context.Background()

	req := employee.CreateEmployeeRequest{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     "priya@acme.example",
	}

	t.Run("Success", func(t *testing.T) {
		gdb, mock := newMockGorm(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, emp *employee.Employee) error {
				// The stored email must be ciphertext, not the input.
				assert.NotEqual(t, req.Email, emp.Email)
				assert.Equal(t, req.Email, codec.SafeDecrypt(emp.Email))
				emp.ID = 11
				return nil
			})
		mockRepo.EXPECT().
			SeedLeaveBalance(ctx, gomock.Any(), int64(11)).
			Return(nil)

		resp, err := service.Create(ctx, gdb, req)

		require.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
		assert.Equal(t, req.Email, resp.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		gdb, mock := newMockGorm(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := service.Create(ctx, gdb, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyUsed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Balance Seed Failure Rolls Back", func(t *testing.T) {
		gdb, mock := newMockGorm(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		mockRepo.EXPECT().
			Create(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, emp *employee.Employee) error {
				emp.ID = 12
				return nil
			})
		mockRepo.EXPECT().
			SeedLeaveBalance(ctx, gomock.Any(), int64(12)).
			Return(assert.AnError)

		_, err := service.Create(ctx, gdb, req)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	mockRepo := employeeMock.NewMockRepository(ctrl)
	service := employee.NewService(mockRepo, codec)
	ctx := context.Background()

	emailCiphertext, err := codec.Encrypt("priya@acme.example")
	require.NoError(t, err)

	existing := &employee.Employee{
		ID:        11,
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     emailCiphertext,
		Status:    employee.StatusActive,
	}

	t.Run("Partial Update Keeps Untouched Ciphertext", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(11)).
			Return(existing, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *gorm.DB, emp *employee.Employee) error {
				assert.Equal(t, "Priya R", emp.FirstName)
				assert.Equal(t, emailCiphertext, emp.Email)
				return nil
			})

		first := "Priya R"
		resp, err := service.Update(ctx, nil, 11, employee.UpdateEmployeeRequest{FirstName: &first})

		require.NoError(t, err)
		assert.Equal(t, "priya@acme.example", resp.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo.EXPECT().
			FindByID(ctx, gomock.Any(), int64(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Update(ctx, nil, 99, employee.UpdateEmployeeRequest{})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	mockRepo := employeeMock.NewMockRepository(ctrl)
	service := employee.NewService(mockRepo, codec)
	ctx := context.Background()

	emailCiphertext, err := codec.Encrypt("dev@acme.example")
	require.NoError(t, err)

	mockRepo.EXPECT().
		FindAll(ctx, gomock.Any(), 1, 20).
		Return([]employee.Employee{
			{ID: 1, FirstName: "Dev", LastName: "Patel", Email: emailCiphertext, Status: employee.StatusActive},
		}, int64(1), nil)

	resp, meta, err := service.GetAll(ctx, nil, 0, 0)

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "dev@acme.example", resp[0].Email)
	assert.Equal(t, int64(1), meta.Total)
}
