package tenantdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

func newFakeHandle(t *testing.T) *gorm.DB {
	t.Helper()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb
}

func TestStoreName(t *testing.T) {
	assert.Equal(t, "tenant_store_42", StoreName(42))
	assert.True(t, ValidStoreName("tenant_store_42"))
	assert.False(t, ValidStoreName("tenant_store_"))
	assert.False(t, ValidStoreName("tenant_store_42; DROP DATABASE x"))
	assert.False(t, ValidStoreName("postgres"))
	assert.False(t, ValidStoreName(""))
}

func TestRouter_Resolve_RejectsMalformedName(t *testing.T) {
	dials := 0
	r := newRouterWithDial(Config{}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		dials++
		return newFakeHandle(t), nil
	})
	defer r.Close()

	_, err := r.Resolve(context.Background(), "master_control_db")
	assert.Error(t, err)
	assert.Equal(t, 0, dials)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUnknownTenant, appErr.Code)
}

func TestRouter_Resolve_PoolsHandles(t *testing.T) {
	dials := 0
	r := newRouterWithDial(Config{}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		dials++
		return newFakeHandle(t), nil
	})
	defer r.Close()

	first, err := r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)

	second, err := r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, dials)
}

func TestRouter_Resolve_SeparateHandlesPerStore(t *testing.T) {
	r := newRouterWithDial(Config{}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		return newFakeHandle(t), nil
	})
	defer r.Close()

	a, err := r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)
	b, err := r.Resolve(context.Background(), "tenant_store_2")
	assert.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestRouter_Resolve_UnknownDatabase(t *testing.T) {
	r := newRouterWithDial(Config{}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		return nil, &pgconn.PgError{Code: "3D000", Message: "database does not exist"}
	})
	defer r.Close()

	_, err := r.Resolve(context.Background(), "tenant_store_99")
	assert.Error(t, err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUnknownTenant, appErr.Code)
}

func TestRouter_Resolve_TransportFailureIsRetryable(t *testing.T) {
	r := newRouterWithDial(Config{}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	defer r.Close()

	_, err := r.Resolve(context.Background(), "tenant_store_7")
	assert.Error(t, err)

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeServiceUnavailable, appErr.Code)
}

func TestRouter_Resolve_DisplacesLRUAtCapacity(t *testing.T) {
	dials := 0
	r := newRouterWithDial(Config{MaxStores: 2, IdleTTL: time.Hour}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		dials++
		return newFakeHandle(t), nil
	})
	defer r.Close()

	_, err := r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)
	_, err = r.Resolve(context.Background(), "tenant_store_2")
	assert.NoError(t, err)
	_, err = r.Resolve(context.Background(), "tenant_store_3")
	assert.NoError(t, err)
	assert.Equal(t, 3, dials)

	// store_1 was least recently used and must have been displaced, so
	// resolving it again requires a fresh dial.
	_, err = r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)
	assert.Equal(t, 4, dials)
}

func TestRouter_Resolve_DisplacedHandleStaysUsable(t *testing.T) {
	mocks := map[string]sqlmock.Sqlmock{}
	r := newRouterWithDial(Config{MaxStores: 1, IdleTTL: time.Hour}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
		assert.NoError(t, err)
		mocks[dbName] = mock
		return gdb, nil
	})
	defer r.Close()

	first, err := r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)

	// Forces store_1 out of the pool while the first handle is still held.
	_, err = r.Resolve(context.Background(), "tenant_store_2")
	assert.NoError(t, err)

	// The held handle must finish its unit of work on a live connection.
	mocks["tenant_store_1"].ExpectQuery(`SELECT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	var one int
	assert.NoError(t, first.Raw(`SELECT 1`).Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestRouter_Close_ClosesRetiredHandles(t *testing.T) {
	r := newRouterWithDial(Config{MaxStores: 1, IdleTTL: time.Hour}, func(ctx context.Context, dbName string) (*gorm.DB, error) {
		return newFakeHandle(t), nil
	})

	first, err := r.Resolve(context.Background(), "tenant_store_1")
	assert.NoError(t, err)
	_, err = r.Resolve(context.Background(), "tenant_store_2")
	assert.NoError(t, err)

	r.Close()

	sqlDB, err := first.DB()
	assert.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
