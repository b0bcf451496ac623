package client_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/Bhavesh2823/Empora/internal/client"
	clienterrors "github.com/Bhavesh2823/Empora/internal/client/errors"
	clientMock "github.com/Bhavesh2823/Empora/internal/client/mock"
	"github.com/Bhavesh2823/Empora/internal/events"
	"github.com/Bhavesh2823/Empora/internal/messaging/kafka"
	kafkaMock "github.com/Bhavesh2823/Empora/internal/messaging/kafka/mock"
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

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	ctx := context.Background()

	req := client.RegisterClientRequest{
		CompanyName: "Acme Corp",
		Email:       "admin@acme.example",
		Phone:       "+1-555-0100",
		Address:     "1 Main St",
	}
	encCompany, _ := codec.Encrypt(req.CompanyName)
	encEmail, _ := codec.Encrypt(req.Email)

	t.Run("Success", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockAlloc := clientMock.NewMockAllocator(ctrl)
		mockProv := clientMock.NewMockProvisioner(ctrl)
		mockOutbox := kafkaMock.NewMockOutboxRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()

		service := client.NewService(mockRepo, mockAlloc, mockProv, codec, rdb, mockOutbox)

		mockRepo.EXPECT().
			ExistsByCiphertext(ctx, encCompany, encEmail).
			Return(false, nil)
		mockAlloc.EXPECT().
			NextID(ctx).
			Return(int64(7), nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, row *client.Client) error {
				assert.Equal(t, int64(7), row.ID)
				assert.Equal(t, client.StateRegistered, row.ProvisionState)
				assert.Equal(t, client.StatusActive, row.Status)
				// Stored columns must be ciphertext, not the submitted values.
				assert.NotEqual(t, req.CompanyName, row.CompanyName)
				dbName, err := codec.Decrypt(row.DBName)
				require.NoError(t, err)
				assert.Equal(t, "tenant_store_7", dbName)
				return nil
			})
		mockProv.EXPECT().
			Provision(gomock.Any(), int64(7), "tenant_store_7", req.Email, req.CompanyName).
			Return(nil)
		mockOutbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, events.ClientLifecycleTopic, event.Topic)
				assert.Equal(t, events.EventTypeClientProvisioned, event.EventType)
				assert.Equal(t, "7", event.AggregateID)

				var payload events.ClientProvisionedEvent
				require.NoError(t, json.Unmarshal(event.Payload, &payload))
				assert.Equal(t, "tenant_store_7", payload.DBName)
				return nil
			})
		rmock.ExpectDel("clients:all").SetVal(1)

		resp, err := service.Register(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "tenant_store_7", resp.DBName)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("Duplicate Rejected Before Allocation", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockAlloc := clientMock.NewMockAllocator(ctrl)
		mockProv := clientMock.NewMockProvisioner(ctrl)

		service := client.NewService(mockRepo, mockAlloc, mockProv, codec, nil, nil)

		// No NextID expectation: a duplicate must not consume an id.
		mockRepo.EXPECT().
			ExistsByCiphertext(ctx, encCompany, encEmail).
			Return(true, nil)

		_, err := service.Register(ctx, req)
		assert.ErrorIs(t, err, clienterrors.ErrClientExists)
	})

	t.Run("Provision Failure Keeps Registry Row", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockAlloc := clientMock.NewMockAllocator(ctrl)
		mockProv := clientMock.NewMockProvisioner(ctrl)

		service := client.NewService(mockRepo, mockAlloc, mockProv, codec, nil, nil)

		mockRepo.EXPECT().
			ExistsByCiphertext(ctx, encCompany, encEmail).
			Return(false, nil)
		mockAlloc.EXPECT().
			NextID(ctx).
			Return(int64(8), nil)
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(nil)
		// No Delete expectation: the row stays behind for Repair.
		mockProv.EXPECT().
			Provision(gomock.Any(), int64(8), "tenant_store_8", req.Email, req.CompanyName).
			Return(&client.ProvisioningError{Step: client.StepApplySchema, Err: assert.AnError})

		_, err := service.Register(ctx, req)
		assert.Error(t, err)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	ctx := context.Background()

	encCompany, _ := codec.Encrypt("Acme Corp")
	encEmail, _ := codec.Encrypt("admin@acme.example")
	encPhone, _ := codec.Encrypt("+1-555-0100")
	encDBName, _ := codec.Encrypt("tenant_store_7")

	stored := client.Client{
		ID:             7,
		CompanyName:    encCompany,
		AdminEmail:     encEmail,
		Phone:          encPhone,
		DBName:         encDBName,
		Status:         client.StatusActive,
		ProvisionState: client.StateActive,
	}

	t.Run("Partial Update Keeps Untouched Ciphertext", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()
		service := client.NewService(mockRepo, nil, nil, codec, rdb, nil)

		row := stored
		newPhone := "+1-555-0199"

		mockRepo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&row, nil)
		mockRepo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, updated *client.Client) error {
				assert.Equal(t, encCompany, updated.CompanyName)
				assert.Equal(t, encEmail, updated.AdminEmail)
				phone, err := codec.Decrypt(updated.Phone)
				require.NoError(t, err)
				assert.Equal(t, newPhone, phone)
				return nil
			})
		rmock.ExpectDel("clients:all").SetVal(1)

		resp, err := service.Update(ctx, 7, client.UpdateClientRequest{Phone: &newPhone})

		assert.NoError(t, err)
		assert.Equal(t, newPhone, resp.Phone)
		assert.Equal(t, "Acme Corp", resp.CompanyName)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("No Fields", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		service := client.NewService(mockRepo, nil, nil, codec, nil, nil)

		_, err := service.Update(ctx, 7, client.UpdateClientRequest{})
		assert.ErrorIs(t, err, clienterrors.ErrNoFieldsToUpdate)
	})
}

func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()
		service := client.NewService(mockRepo, nil, nil, codec, rdb, nil)

		mockRepo.EXPECT().
			Delete(ctx, int64(7)).
			Return(int64(1), nil)
		rmock.ExpectDel("clients:all").SetVal(1)

		assert.NoError(t, service.Remove(ctx, 7))
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		service := client.NewService(mockRepo, nil, nil, codec, nil, nil)

		mockRepo.EXPECT().
			Delete(ctx, int64(99)).
			Return(int64(0), nil)

		err := service.Remove(ctx, 99)
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})
}

func TestService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	ctx := context.Background()

	encCompany, _ := codec.Encrypt("Acme Corp")
	encEmail, _ := codec.Encrypt("admin@acme.example")
	encDBName, _ := codec.Encrypt("tenant_store_7")

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []client.Client{{
		ID:             7,
		CompanyName:    encCompany,
		AdminEmail:     encEmail,
		DBName:         encDBName,
		Status:         client.StatusActive,
		ProvisionState: client.StateActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}}

	t.Run("Cache Miss Hits Repository", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()
		service := client.NewService(mockRepo, nil, nil, codec, rdb, nil)

		rmock.ExpectGet("clients:all").RedisNil()
		mockRepo.EXPECT().
			FindAll(ctx).
			Return(rows, nil)
		rmock.Regexp().ExpectSet("clients:all", `.*`, 30*time.Minute).SetVal("OK")

		resp, err := service.GetAll(ctx)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Acme Corp", resp[0].CompanyName)
		assert.Equal(t, "tenant_store_7", resp[0].DBName)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("Cache Hit Skips Repository", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		rdb, rmock := redismock.NewClientMock()
		service := client.NewService(mockRepo, nil, nil, codec, rdb, nil)

		cached, _ := json.Marshal([]client.ClientResponse{{ID: 7, CompanyName: "Acme Corp"}})
		rmock.ExpectGet("clients:all").SetVal(string(cached))

		resp, err := service.GetAll(ctx)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Acme Corp", resp[0].CompanyName)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})
}

func TestService_Repair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	codec := newTestCodec(t)
	ctx := context.Background()

	encCompany, _ := codec.Encrypt("Acme Corp")
	encEmail, _ := codec.Encrypt("admin@acme.example")
	encDBName, _ := codec.Encrypt("tenant_store_7")

	t.Run("Resumes Provisioning", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		mockProv := clientMock.NewMockProvisioner(ctrl)
		rdb, rmock := redismock.NewClientMock()
		service := client.NewService(mockRepo, nil, mockProv, codec, rdb, nil)

		mockRepo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&client.Client{
				ID:             7,
				CompanyName:    encCompany,
				AdminEmail:     encEmail,
				DBName:         encDBName,
				ProvisionState: client.StateSchemaApplied,
			}, nil)
		mockProv.EXPECT().
			Provision(gomock.Any(), int64(7), "tenant_store_7", "admin@acme.example", "Acme Corp").
			Return(nil)
		rmock.ExpectDel("clients:all").SetVal(1)

		assert.NoError(t, service.Repair(ctx, 7))
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("Already Active", func(t *testing.T) {
		mockRepo := clientMock.NewMockRepository(ctrl)
		service := client.NewService(mockRepo, nil, nil, codec, nil, nil)

		mockRepo.EXPECT().
			FindByID(ctx, int64(7)).
			Return(&client.Client{ID: 7, ProvisionState: client.StateActive}, nil)

		err := service.Repair(ctx, 7)
		assert.ErrorIs(t, err, clienterrors.ErrNotRepairable)
	})
}
