// Package publickeys declares the repository contract for registered public
// keys and its PostgreSQL implementation.
package publickeys

import (
	"context"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

// Repository stores public keys keyed by the key string. The store enforces
// key uniqueness on its own.
type Repository interface {
	// Create inserts a key. An existing key yields common.ErrDuplicateKey.
	Create(ctx context.Context, key *models.PublicKey) error

	// Find returns the record for key, or common.ErrorNotFound.
	Find(ctx context.Context, key string) (*models.PublicKey, error)

	// ListByOwner returns the owner's keys, oldest first.
	ListByOwner(ctx context.Context, owner string) ([]*models.PublicKey, error)

	// Delete removes key if it belongs to owner, and returns
	// common.ErrorNotFound otherwise.
	Delete(ctx context.Context, owner, key string) error
}
