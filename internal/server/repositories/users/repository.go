// Package users provides read access to the identity store.
package users

import (
	"context"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

// Repository looks up identities. Account creation lives outside this server.
type Repository interface {
	// GetByEmail returns the identity or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
