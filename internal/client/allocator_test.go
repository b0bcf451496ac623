package client_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/client"
	clienterrors "github.com/Bhavesh2823/Empora/internal/client/errors"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return gdb, mock
}

func TestAllocator_NextID(t *testing.T) {
	gdb, mock := newMockGorm(t)
	alloc := client.NewAllocator(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT last_client_id FROM config WHERE id = 1 FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"last_client_id"}).AddRow(41))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE config SET last_client_id = $1 WHERE id = 1`)).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := alloc.NextID(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocator_NextID_MissingConfigRow(t *testing.T) {
	gdb, mock := newMockGorm(t)
	alloc := client.NewAllocator(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT last_client_id FROM config WHERE id = 1 FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"last_client_id"}))
	mock.ExpectRollback()

	_, err := alloc.NextID(context.Background())
	assert.ErrorIs(t, err, clienterrors.ErrRegistryNotInitialized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocator_NextID_UpdateFailureRollsBack(t *testing.T) {
	gdb, mock := newMockGorm(t)
	alloc := client.NewAllocator(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT last_client_id FROM config WHERE id = 1 FOR UPDATE`)).
		WillReturnRows(sqlmock.NewRows([]string{"last_client_id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE config SET last_client_id = $1 WHERE id = 1`)).
		WithArgs(int64(11)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := alloc.NextID(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
