// Package accesstokens declares the repository contract for bucket access
// tokens and its PostgreSQL implementation.
package accesstokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

// Repository stores access tokens keyed by the token string.
type Repository interface {
	// Create inserts a token. A token string that already exists yields
	// common.ErrDuplicateKey.
	Create(ctx context.Context, token *models.AccessToken) error

	// Find returns the token row by exact match, or common.ErrorNotFound.
	// Expiry is not checked here.
	Find(ctx context.Context, token string) (*models.AccessToken, error)

	// Delete removes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes every token whose expiry is at or before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
