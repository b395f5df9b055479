package buckets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credbridge/internal/common"
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

func (r *PostgresRepository) Find(ctx context.Context, id uuid.UUID) (*models.Bucket, error) {
	query := `
		SELECT id, name, owner, created_at
		FROM buckets
		WHERE id = $1
	`
	b := &models.Bucket{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Name, &b.Owner, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}
