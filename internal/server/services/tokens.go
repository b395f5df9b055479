package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/logging"
	"github.com/dmitrijs2005/credbridge/internal/server/config"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/repomanager"
)

// ObjectPresigner turns a redeemed token into a presigned object URL.
type ObjectPresigner interface {
	Presign(ctx context.Context, op models.Operation, bucket, key string, ttl time.Duration) (*models.ObjectGrant, error)
}

// AccessTokenService issues and resolves bucket access tokens.
//
// Token values are 32 bytes from crypto/rand, hex-encoded. Uniqueness is not
// checked before insert: a collision is negligible at 256 bits and the
// token primary key rejects it anyway.
type AccessTokenService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	presigner       ObjectPresigner
	logger          logging.Logger
	validity        time.Duration
	presignValidity time.Duration
	now             func() time.Time
}

func NewAccessTokenService(db *sql.DB, m repomanager.RepositoryManager, p ObjectPresigner, cfg *config.Config, l logging.Logger) *AccessTokenService {
	return &AccessTokenService{
		db:              db,
		repomanager:     m,
		presigner:       p,
		logger:          l.With("module", "access_tokens"),
		validity:        cfg.TokenValidityDuration,
		presignValidity: cfg.PresignValidityDuration,
		now:             time.Now,
	}
}

// Generate returns a fresh 64-character lowercase hex token value.
func (s *AccessTokenService) Generate() (string, error) {
	return common.MakeRandHexString(common.TokenSize)
}

// Create issues a token for operation ("PUSH" or "PULL", case-sensitive)
// on bucket. The bucket is trusted to exist and to belong to the caller.
func (s *AccessTokenService) Create(ctx context.Context, bucket models.Bucket, operation string) (*models.AccessToken, error) {
	op, err := models.ParseOperation(operation)
	if err != nil {
		return nil, err
	}

	value, err := s.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := s.now()
	token := &models.AccessToken{
		Token:     value,
		Bucket:    bucket.ID,
		Operation: op,
		CreatedAt: now,
	}
	if s.validity > 0 {
		token.Expires = now.Add(s.validity)
	}

	if err := s.repomanager.AccessTokens(s.db).Create(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "access token issued", "bucket", bucket.ID.String(), "operation", string(op))
	return token, nil
}

// Lookup resolves a token value by exact match. Unknown and expired tokens
// both yield common.ErrorNotFound.
func (s *AccessTokenService) Lookup(ctx context.Context, value string) (*models.AccessToken, error) {
	token, err := s.repomanager.AccessTokens(s.db).Find(ctx, value)
	if err != nil {
		return nil, err
	}
	if token.Expired(s.now()) {
		return nil, common.ErrorNotFound
	}
	return token, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (s *AccessTokenService) Revoke(ctx context.Context, value string) error {
	return s.repomanager.AccessTokens(s.db).Delete(ctx, value)
}

// PurgeExpired deletes every expired token and returns the count.
func (s *AccessTokenService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.AccessTokens(s.db).DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Debug(ctx, "expired access tokens purged", "count", n)
	}
	return n, nil
}

// Redeem resolves a token and returns a presigned URL for objectKey inside
// the token's bucket: PUT for PUSH tokens, GET for PULL tokens.
func (s *AccessTokenService) Redeem(ctx context.Context, value, objectKey string) (*models.ObjectGrant, error) {
	key, err := cleanObjectKey(objectKey)
	if err != nil {
		return nil, err
	}

	token, err := s.Lookup(ctx, value)
	if err != nil {
		return nil, err
	}

	bucket, err := s.repomanager.Buckets(s.db).Find(ctx, token.Bucket)
	if err != nil {
		return nil, err
	}

	ttl := s.presignValidity
	if !token.Expires.IsZero() {
		if left := token.Expires.Sub(s.now()); left < ttl {
			ttl = left
		}
	}

	storageKey := path.Join("buckets", bucket.ID.String(), key)
	return s.presigner.Presign(ctx, token.Operation, bucket.Name, storageKey, ttl)
}

// cleanObjectKey rejects empty keys and keys that escape the bucket prefix.
func cleanObjectKey(objectKey string) (string, error) {
	if strings.TrimSpace(objectKey) == "" {
		return "", fmt.Errorf("%w: empty key", common.ErrInvalidObjectKey)
	}
	cleaned := path.Clean("/" + objectKey)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(objectKey, "/") {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidObjectKey, objectKey)
	}
	return cleaned, nil
}
