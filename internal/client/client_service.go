package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	clienterrors "github.com/Bhavesh2823/Empora/internal/client/errors"
	"github.com/Bhavesh2823/Empora/internal/events"
	"github.com/Bhavesh2823/Empora/internal/messaging/kafka"
	"github.com/Bhavesh2823/Empora/internal/shared/contextutil"
	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

const (
	clientListCacheKey = "clients:all"
	clientListCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterClientRequest) (RegisterClientResponse, error)
	GetAll(ctx context.Context) ([]ClientResponse, error)
	GetByID(ctx context.Context, id int64) (*ClientResponse, error)
	Update(ctx context.Context, id int64, req UpdateClientRequest) (*ClientResponse, error)
	Remove(ctx context.Context, id int64) error
	// Repair resumes a provisioning run from the last completed step. It is
	// the sanctioned way to recover a registration whose provisioning
	// failed partway; the registry row is never rolled back automatically.
	Repair(ctx context.Context, id int64) error
}

type service struct {
	repo        Repository
	allocator   Allocator
	provisioner Provisioner
	codec       *fieldcrypto.Codec
	rdb         *redis.Client
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	allocator Allocator,
	provisioner Provisioner,
	codec *fieldcrypto.Codec,
	rdb *redis.Client,
	outbox kafka.OutboxRepository,
) Service {
	return &service{
		repo:        repo,
		allocator:   allocator,
		provisioner: provisioner,
		codec:       codec,
		rdb:         rdb,
		outbox:      outbox,
		logger:      zap.L().Named("client.service"),
	}
}

func (s *service) Register(ctx context.Context, req RegisterClientRequest) (RegisterClientResponse, error) {
	encCompany, err := s.codec.Encrypt(req.CompanyName)
	if err != nil {
		return RegisterClientResponse{}, err
	}
	encEmail, err := s.codec.Encrypt(req.Email)
	if err != nil {
		return RegisterClientResponse{}, err
	}

	// Duplicate check happens before allocation so a rejected registration
	// never consumes an id.
	exists, err := s.repo.ExistsByCiphertext(ctx, encCompany, encEmail)
	if err != nil {
		return RegisterClientResponse{}, err
	}
	if exists {
		return RegisterClientResponse{}, clienterrors.ErrClientExists
	}

	id, err := s.allocator.NextID(ctx)
	if err != nil {
		return RegisterClientResponse{}, err
	}

	dbName := tenantdb.StoreName(id)
	encDBName, err := s.codec.Encrypt(dbName)
	if err != nil {
		return RegisterClientResponse{}, err
	}
	encPhone, err := s.codec.Encrypt(req.Phone)
	if err != nil {
		return RegisterClientResponse{}, err
	}
	encAddress, err := s.codec.Encrypt(req.Address)
	if err != nil {
		return RegisterClientResponse{}, err
	}

	row := &Client{
		ID:             id,
		CompanyName:    encCompany,
		AdminEmail:     encEmail,
		Phone:          encPhone,
		Address:        encAddress,
		DBName:         encDBName,
		Status:         StatusActive,
		ProvisionState: StateRegistered,
	}
	if req.AgreementFilePath != "" {
		path := req.AgreementFilePath
		row.AgreementFilePath = &path
	}

	if err := s.repo.Create(ctx, row); err != nil {
		return RegisterClientResponse{}, mapRepositoryError(err)
	}

	// On failure the registry row stays behind with its provision state;
	// Repair picks it up from there.
	if err := s.provisioner.Provision(ctx, id, dbName, req.Email, req.CompanyName); err != nil {
		s.logger.Error("provisioning failed; registry row kept for repair",
			zap.Int64("client_id", id),
			zap.String("db_name", dbName),
			zap.Error(err),
		)
		return RegisterClientResponse{}, mapRepositoryError(err)
	}

	s.enqueueProvisionedEvent(ctx, id, dbName)
	s.invalidateListCache(ctx)

	s.logger.Info("client registered",
		zap.Int64("client_id", id),
		zap.String("db_name", dbName),
	)

	return RegisterClientResponse{ID: id, DBName: dbName}, nil
}

func (s *service) GetAll(ctx context.Context) ([]ClientResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, clientListCacheKey).Result(); err == nil {
			var resp []ClientResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]ClientResponse, len(rows))
	for i, row := range rows {
		resp[i] = s.mapToResponse(row)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, clientListCacheKey, data, clientListCacheTTL).Err(); err != nil {
				s.logger.Warn("cache client list failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*ClientResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := s.mapToResponse(*row)
	return &resp, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*ClientResponse, error) {
	if req.CompanyName == nil && req.AdminEmail == nil && req.Phone == nil &&
		req.Address == nil && req.AgreementFilePath == nil && req.Status == nil {
		return nil, clienterrors.ErrNoFieldsToUpdate
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	// Partial replacement: only supplied fields are re-encrypted, the rest
	// keep their stored ciphertext untouched.
	if req.CompanyName != nil {
		if row.CompanyName, err = s.codec.Encrypt(*req.CompanyName); err != nil {
			return nil, err
		}
	}
	if req.AdminEmail != nil {
		if row.AdminEmail, err = s.codec.Encrypt(*req.AdminEmail); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		if row.Phone, err = s.codec.Encrypt(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		if row.Address, err = s.codec.Encrypt(*req.Address); err != nil {
			return nil, err
		}
	}
	if req.AgreementFilePath != nil {
		if *req.AgreementFilePath == "" {
			row.AgreementFilePath = nil
		} else {
			row.AgreementFilePath = req.AgreementFilePath
		}
	}
	if req.Status != nil {
		row.Status = *req.Status
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, mapRepositoryError(err)
	}

	s.invalidateListCache(ctx)

	resp := s.mapToResponse(*row)
	return &resp, nil
}

func (s *service) Remove(ctx context.Context, id int64) error {
	// Registry row only. The physical store is never dropped here: teardown
	// is a separate destructive operation with its own confirmation, and
	// the id is never reissued either way.
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return clienterrors.ErrClientNotFound
	}

	s.invalidateListCache(ctx)
	return nil
}

func (s *service) Repair(ctx context.Context, id int64) error {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if row.ProvisionState == StateActive {
		return clienterrors.ErrNotRepairable
	}

	// Repair needs the plaintexts back; a decrypt failure here is a fatal
	// configuration problem, not something to work around.
	dbName, err := s.codec.Decrypt(row.DBName)
	if err != nil {
		return err
	}
	adminEmail, err := s.codec.Decrypt(row.AdminEmail)
	if err != nil {
		return err
	}
	companyName, err := s.codec.Decrypt(row.CompanyName)
	if err != nil {
		return err
	}

	if err := s.provisioner.Provision(ctx, id, dbName, adminEmail, companyName); err != nil {
		return mapRepositoryError(err)
	}

	s.enqueueProvisionedEvent(ctx, id, dbName)
	s.invalidateListCache(ctx)
	return nil
}

// enqueueProvisionedEvent stages the lifecycle event; losing it is logged
// but never fails the registration itself.
func (s *service) enqueueProvisionedEvent(ctx context.Context, id int64, dbName string) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(events.ClientProvisionedEvent{
		EventType:  events.EventTypeClientProvisioned,
		ClientID:   id,
		DBName:     dbName,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal provisioned event failed", zap.Error(err))
		return
	}

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "client",
		AggregateID:   fmt.Sprintf("%d", id),
		EventType:     events.EventTypeClientProvisioned,
		Topic:         events.ClientLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("enqueue provisioned event failed", zap.Int64("client_id", id), zap.Error(err))
	}
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, clientListCacheKey).Err(); err != nil {
		s.logger.Warn("invalidate client list cache failed", zap.Error(err))
	}
}

// mapToResponse decrypts for display with the safe variants: one corrupt
// field must not abort a whole listing.
func (s *service) mapToResponse(row Client) ClientResponse {
	resp := ClientResponse{
		ID:             row.ID,
		CompanyName:    s.codec.SafeDecrypt(row.CompanyName),
		AdminEmail:     s.codec.SafeDecrypt(row.AdminEmail),
		Phone:          s.codec.SafeDecrypt(row.Phone),
		Address:        s.codec.SafeDecrypt(row.Address),
		DBName:         s.codec.SafeDecrypt(row.DBName),
		Status:         row.Status,
		ProvisionState: row.ProvisionState,
		CreatedAt:      row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      row.UpdatedAt.Format(time.RFC3339),
	}
	if row.AgreementFilePath != nil {
		resp.AgreementFilePath = *row.AgreementFilePath
	}
	return resp
}
