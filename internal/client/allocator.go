package client

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	clienterrors "github.com/Bhavesh2823/Empora/internal/client/errors"
	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
)

//go:generate mockgen -source=allocator.go -destination=mock/allocator_mock.go -package=mock
type Allocator interface {
	// NextID returns a fresh, strictly increasing client id. IDs are never
	// reused, even for failed registrations or deleted clients: db names
	// are derived from them and must stay unique forever.
	NextID(ctx context.Context) (int64, error)
}

type allocator struct {
	db *gorm.DB
}

func NewAllocator(db *gorm.DB) Allocator {
	return &allocator{db: db}
}

func (a *allocator) NextID(ctx context.Context) (int64, error) {
	var next int64

	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64

		// Row lock serializes concurrent registrations; the increment and
		// write-back happen inside the same transaction, so no two callers
		// can observe the same counter value.
		res := tx.Raw(`SELECT last_client_id FROM config WHERE id = 1 FOR UPDATE`).Scan(&last)
		if res.Error != nil {
			return apperror.Wrap(res.Error, apperror.CodeAllocationFailed,
				clienterrors.ErrAllocationFailed.Message, http.StatusInternalServerError)
		}
		if res.RowsAffected == 0 {
			// Never create the row here: a fresh counter would restart ids
			// from zero and collide with existing tenant stores.
			return clienterrors.ErrRegistryNotInitialized
		}

		next = last + 1

		if err := tx.Exec(`UPDATE config SET last_client_id = ? WHERE id = 1`, next).Error; err != nil {
			return apperror.Wrap(err, apperror.CodeAllocationFailed,
				clienterrors.ErrAllocationFailed.Message, http.StatusInternalServerError)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}
