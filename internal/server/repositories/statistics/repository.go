// Package statistics stores storage-usage ledger rows. Rows are written and
// listed, never aggregated here.
package statistics

import (
	"context"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, stat *models.StorageStatistic) error
	// ListByBucket returns the bucket's rows, newest first.
	ListByBucket(ctx context.Context, bucket uuid.UUID) ([]*models.StorageStatistic, error)
}
