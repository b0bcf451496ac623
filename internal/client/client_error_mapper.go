package client

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	clienterrors "github.com/Bhavesh2823/Empora/internal/client/errors"
	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clienterrors.ErrClientNotFound
	}

	var provErr *ProvisioningError
	if errors.As(err, &provErr) {
		return apperror.Wrap(
			provErr,
			apperror.CodeProvisioningFailed,
			"tenant store provisioning failed at step "+provErr.Step,
			http.StatusInternalServerError,
		)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 unique_violation: the encrypted company name or admin email
		// collided, which the deterministic codec makes equivalent to a
		// plaintext duplicate.
		if pgErr.Code == "23505" {
			return clienterrors.ErrClientExists
		}
	}

	return err
}
