package statistics

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/credbridge/internal/dbx"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.StorageStatistic) error {
	query := `
		INSERT INTO storage_statistics
			(id, bucket, bucket_entry, user_email, recorded_at, upload_bandwidth, download_bandwidth, storage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Bucket, s.BucketEntry, s.User, s.Timestamp,
		nullInt64(s.UploadBandwidth), nullInt64(s.DownloadBandwidth), nullInt64(s.Storage))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByBucket(ctx context.Context, bucket uuid.UUID) ([]*models.StorageStatistic, error) {
	query := `
		SELECT id, bucket, bucket_entry, user_email, recorded_at, upload_bandwidth, download_bandwidth, storage
		FROM storage_statistics
		WHERE bucket = $1
		ORDER BY recorded_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, bucket)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.StorageStatistic
	for rows.Next() {
		var (
			s                 models.StorageStatistic
			up, down, storage sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Bucket, &s.BucketEntry, &s.User, &s.Timestamp, &up, &down, &storage); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		s.UploadBandwidth = int64Ptr(up)
		s.DownloadBandwidth = int64Ptr(down)
		s.Storage = int64Ptr(storage)
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
