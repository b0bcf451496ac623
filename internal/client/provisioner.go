package client

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

// Every tenant admin starts with this credential and is expected to rotate
// it out-of-band after first login.
const defaultAdminPassword = "Admin@123"

const (
	StepCreateStore = "create_store"
	StepVerifyStore = "verify_store"
	StepApplySchema = "apply_schema"
	StepSeedRoles   = "seed_roles"
	StepSeedAdmin   = "seed_admin"
)

var seedRoles = []string{"superuser", "admin", "employee"}

// ProvisioningError reports the step a provisioning run died at, so an
// operator knows where to resume or clean up. There is no automatic
// rollback of earlier steps.
type ProvisioningError struct {
	Step string
	Err  error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed at step %q: %v", e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// StoreOpener resolves a plaintext store name into a live handle. Satisfied
// by tenantdb.Router.
type StoreOpener interface {
	Resolve(ctx context.Context, dbName string) (*gorm.DB, error)
}

//go:generate mockgen -source=provisioner.go -destination=mock/provisioner_mock.go -package=mock
type Provisioner interface {
	// Provision creates and seeds the store for a client, resuming from the
	// client's recorded provision state. Each completed step persists its
	// state before the next begins.
	Provision(ctx context.Context, id int64, dbName, adminEmail, companyName string) error
}

type provisioner struct {
	master *gorm.DB
	opener StoreOpener
	repo   Repository
	codec  *fieldcrypto.Codec
	logger *zap.Logger
}

func NewProvisioner(master *gorm.DB, opener StoreOpener, repo Repository, codec *fieldcrypto.Codec) Provisioner {
	return &provisioner{
		master: master,
		opener: opener,
		repo:   repo,
		codec:  codec,
		logger: zap.L().Named("client.provisioner"),
	}
}

func (p *provisioner) Provision(ctx context.Context, id int64, dbName, adminEmail, companyName string) error {
	if !tenantdb.ValidStoreName(dbName) {
		return &ProvisioningError{Step: StepCreateStore, Err: fmt.Errorf("invalid store name %q", dbName)}
	}

	// Once started, a run should finish or fail explicitly, not vanish
	// because the client hung up. Partial schema creation is an error state
	// to be surfaced, so the caller's cancellation is deliberately dropped
	// and replaced with a hard upper bound.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Minute)
	defer cancel()

	current, err := p.repo.FindByID(ctx, id)
	if err != nil {
		return &ProvisioningError{Step: StepCreateStore, Err: fmt.Errorf("load registry row: %w", err)}
	}
	state := current.ProvisionState

	if state == StateRegistered {
		if err := p.createStore(ctx, dbName); err != nil {
			return err
		}
		if err := p.advance(ctx, id, StateStoreCreated); err != nil {
			return err
		}
		state = StateStoreCreated
	}

	store, err := p.opener.Resolve(ctx, dbName)
	if err != nil {
		return &ProvisioningError{Step: StepVerifyStore, Err: err}
	}

	if state == StateStoreCreated {
		if err := applyStoreSchema(ctx, store); err != nil {
			return &ProvisioningError{Step: StepApplySchema, Err: err}
		}
		if err := p.advance(ctx, id, StateSchemaApplied); err != nil {
			return err
		}
		state = StateSchemaApplied
	}

	if state == StateSchemaApplied {
		if err := p.seedRoles(ctx, store); err != nil {
			return &ProvisioningError{Step: StepSeedRoles, Err: err}
		}
		if err := p.advance(ctx, id, StateSeeded); err != nil {
			return err
		}
		state = StateSeeded
	}

	if state == StateSeeded {
		if err := p.seedAdmin(ctx, store, adminEmail, companyName); err != nil {
			return &ProvisioningError{Step: StepSeedAdmin, Err: err}
		}
		if err := p.advance(ctx, id, StateActive); err != nil {
			return err
		}
	}

	p.logger.Info("tenant store provisioned",
		zap.Int64("client_id", id),
		zap.String("db_name", dbName),
	)
	return nil
}

// createStore issues the CREATE DATABASE and then verifies the database is
// actually visible in the catalog. Trusting the DDL alone has burned this
// flow before.
func (p *provisioner) createStore(ctx context.Context, dbName string) error {
	var exists int64
	err := p.master.WithContext(ctx).
		Raw(`SELECT COUNT(1) FROM pg_database WHERE datname = ?`, dbName).
		Scan(&exists).Error
	if err != nil {
		return &ProvisioningError{Step: StepCreateStore, Err: err}
	}

	if exists == 0 {
		// Identifiers cannot be bound as parameters; the name is produced by
		// StoreName and re-validated above, so quoting it is enough.
		stmt := fmt.Sprintf(`CREATE DATABASE %q`, dbName)
		if err := p.master.WithContext(ctx).Exec(stmt).Error; err != nil {
			return &ProvisioningError{Step: StepCreateStore, Err: err}
		}
	}

	err = p.master.WithContext(ctx).
		Raw(`SELECT COUNT(1) FROM pg_database WHERE datname = ?`, dbName).
		Scan(&exists).Error
	if err != nil {
		return &ProvisioningError{Step: StepVerifyStore, Err: err}
	}
	if exists == 0 {
		return &ProvisioningError{Step: StepVerifyStore, Err: fmt.Errorf("database %q was not created", dbName)}
	}

	return nil
}

func (p *provisioner) seedRoles(ctx context.Context, store *gorm.DB) error {
	for _, role := range seedRoles {
		err := store.WithContext(ctx).Exec(
			`INSERT INTO roles (role_name) VALUES (?) ON CONFLICT (role_name) DO NOTHING`,
			role,
		).Error
		if err != nil {
			return fmt.Errorf("seed role %q: %w", role, err)
		}
	}
	return nil
}

func (p *provisioner) seedAdmin(ctx context.Context, store *gorm.DB, adminEmail, companyName string) error {
	name, err := p.codec.Encrypt(companyName)
	if err != nil {
		return err
	}
	email, err := p.codec.Encrypt(adminEmail)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Admin password is hashed, never encrypted. Keyed on the encrypted
	// email so a repair re-run cannot create a second admin.
	return store.WithContext(ctx).Exec(
		`INSERT INTO admins (name, email, password, role) VALUES (?, ?, ?, 'admin') ON CONFLICT (email) DO NOTHING`,
		name, email, string(hash),
	).Error
}

func (p *provisioner) advance(ctx context.Context, id int64, state string) error {
	if err := p.repo.SetProvisionState(ctx, id, state); err != nil {
		return &ProvisioningError{Step: state, Err: fmt.Errorf("record provision state: %w", err)}
	}
	p.logger.Info("provision state advanced", zap.Int64("client_id", id), zap.String("state", state))
	return nil
}
