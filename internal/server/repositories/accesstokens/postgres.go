package accesstokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/dbx"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.AccessToken) error {
	query := `
		INSERT INTO access_tokens (token, bucket, operation, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	var expires sql.NullTime
	if !token.Expires.IsZero() {
		expires = sql.NullTime{Time: token.Expires, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, token.Token, token.Bucket, string(token.Operation), expires); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.AccessToken, error) {
	query := `
		SELECT token, bucket, operation, expires_at, created_at
		FROM access_tokens
		WHERE token = $1
	`
	var (
		t       models.AccessToken
		op      string
		expires sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.Bucket, &op, &expires, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	t.Operation = models.Operation(op)
	if expires.Valid {
		t.Expires = expires.Time
	}
	return &t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM access_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM access_tokens
		WHERE expires_at IS NOT NULL AND expires_at <= $1
	`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
