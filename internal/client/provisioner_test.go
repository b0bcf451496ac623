package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Bhavesh2823/Empora/internal/client"
	clientMock "github.com/Bhavesh2823/Empora/internal/client/mock"
)

func TestProvisioner_Provision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	ctx := context.Background()

	t.Run("Rejects Invalid Store Name", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockOpener := clientMock.NewMockStoreOpener(ctrl)
		master, _ := newMockGorm(t)

		prov := client.NewProvisioner(master, mockOpener, mockRepo, codec)

		err := prov.Provision(ctx, 1, "tenant; DROP DATABASE", "a@b.example", "Acme")

		var perr *client.ProvisioningError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, client.StepCreateStore, perr.Step)
	})

	t.Run("Create Store Failure Surfaces Step", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockOpener := clientMock.NewMockStoreOpener(ctrl)
		master, masterMock := newMockGorm(t)

		prov := client.NewProvisioner(master, mockOpener, mockRepo, codec)

		mockRepo.EXPECT().
			FindByID(gomock.Any(), int64(3)).
			Return(&client.Client{ID: 3, ProvisionState: client.StateRegistered}, nil)
		masterMock.ExpectQuery(`SELECT COUNT\(1\) FROM pg_database`).
			WillReturnError(errors.New("connection refused"))

		err := prov.Provision(ctx, 3, "tenant_store_3", "a@b.example", "Acme")

		var perr *client.ProvisioningError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, client.StepCreateStore, perr.Step)
		assert.NoError(t, masterMock.ExpectationsWereMet())
	})

	t.Run("Resumes From Seeded", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockOpener := clientMock.NewMockStoreOpener(ctrl)
		master, _ := newMockGorm(t)
		store, storeMock := newMockGorm(t)

		prov := client.NewProvisioner(master, mockOpener, mockRepo, codec)

		encName, _ := codec.Encrypt("Acme")
		encEmail, _ := codec.Encrypt("a@b.example")

		// Only the admin seed remains; earlier steps must not be re-run.
		mockRepo.EXPECT().
			FindByID(gomock.Any(), int64(5)).
			Return(&client.Client{ID: 5, ProvisionState: client.StateSeeded}, nil)
		mockOpener.EXPECT().
			Resolve(gomock.Any(), "tenant_store_5").
			Return(store, nil)
		storeMock.ExpectExec(`INSERT INTO admins`).
			WithArgs(encName, encEmail, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mockRepo.EXPECT().
			SetProvisionState(gomock.Any(), int64(5), client.StateActive).
			Return(nil)

		err := prov.Provision(ctx, 5, "tenant_store_5", "a@b.example", "Acme")

		assert.NoError(t, err)
		assert.NoError(t, storeMock.ExpectationsWereMet())
	})
}
