package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// StatisticsService records storage-usage ledger rows.
type StatisticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStatisticsService(db *sql.DB, m repomanager.RepositoryManager) *StatisticsService {
	return &StatisticsService{db: db, repomanager: m}
}

// Record checks the required fields, assigns an id and stores stat.
func (s *StatisticsService) Record(ctx context.Context, stat *models.StorageStatistic) error {
	var missing []string
	if stat.Bucket == uuid.Nil {
		missing = append(missing, "bucket")
	}
	if stat.BucketEntry == "" {
		missing = append(missing, "bucketEntry")
	}
	if stat.User == "" {
		missing = append(missing, "user")
	}
	if stat.Timestamp.IsZero() {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", common.ErrorIncorrectMetadata, strings.Join(missing, ", "))
	}

	stat.ID = uuid.New()
	return s.repomanager.Statistics(s.db).Create(ctx, stat)
}

func (s *StatisticsService) ListByBucket(ctx context.Context, bucket uuid.UUID) ([]*models.StorageStatistic, error) {
	return s.repomanager.Statistics(s.db).ListByBucket(ctx, bucket)
}
