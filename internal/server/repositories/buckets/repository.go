// Package buckets provides read access to the bucket store.
package buckets

import (
	"context"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	// Find returns the bucket or common.ErrorNotFound.
	Find(ctx context.Context, id uuid.UUID) (*models.Bucket, error)
}
