package publickeys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/dbx"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, key *models.PublicKey) error {
	query := `
		INSERT INTO public_keys (key, owner, label)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, key.Key, key.Owner, key.Label).Scan(&key.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, key string) (*models.PublicKey, error) {
	query := `
		SELECT key, owner, label, created_at
		FROM public_keys
		WHERE key = $1
	`
	k := &models.PublicKey{}
	if err := r.db.QueryRowContext(ctx, query, key).Scan(&k.Key, &k.Owner, &k.Label, &k.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return k, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]*models.PublicKey, error) {
	query := `
		SELECT key, owner, label, created_at
		FROM public_keys
		WHERE owner = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.PublicKey
	for rows.Next() {
		k := &models.PublicKey{}
		if err := rows.Scan(&k.Key, &k.Owner, &k.Label, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, owner, key string) error {
	query := `
		DELETE FROM public_keys
		WHERE key = $1 AND owner = $2
	`
	res, err := r.db.ExecContext(ctx, query, key, owner)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
