// Package services contains the server-side business logic: public key
// registration, bucket access tokens and the storage statistics sink.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/dbx"
	"github.com/dmitrijs2005/credbridge/internal/logging"
	"github.com/dmitrijs2005/credbridge/internal/server/keys"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/repomanager"
)

// PublicKeyService registers secp256k1 public keys. Keys are append-only:
// there is no update, only Register and Revoke.
type PublicKeyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewPublicKeyService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *PublicKeyService {
	return &PublicKeyService{
		db:          db,
		repomanager: m,
		logger:      l.With("module", "public_keys"),
	}
}

// Validate checks that candidate is a hex-encoded point on secp256k1.
// Failures match common.ErrInvalidKeyFormat.
func (s *PublicKeyService) Validate(candidate string) (*secp256k1.PublicKey, error) {
	pub, err := keys.Validate(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidKeyFormat, err)
	}
	return pub, nil
}

// Register validates candidate and stores it for owner with the given label.
// A key already registered to anyone fails with common.ErrDuplicateKey and
// leaves the existing record untouched.
func (s *PublicKeyService) Register(ctx context.Context, owner models.User, candidate, label string) (*models.PublicKey, error) {
	if _, err := s.Validate(candidate); err != nil {
		s.logger.Debug(ctx, "public key rejected", "owner", owner.Email, "error", err.Error())
		return nil, err
	}

	record := &models.PublicKey{Key: candidate, Owner: owner.Email, Label: label}
	fp := keys.Fingerprint(candidate)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.PublicKeys(tx)

		_, err := repo.Find(ctx, candidate)
		switch {
		case err == nil:
			return common.ErrDuplicateKey
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		return repo.Create(ctx, record)
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateKey) {
			s.logger.Warn(ctx, "public key already registered", "owner", owner.Email, "fingerprint", fp)
		}
		return nil, err
	}

	s.logger.Info(ctx, "public key registered", "owner", owner.Email, "fingerprint", fp)
	return record, nil
}

// List returns the keys registered to owner.
func (s *PublicKeyService) List(ctx context.Context, owner string) ([]*models.PublicKey, error) {
	return s.repomanager.PublicKeys(s.db).ListByOwner(ctx, owner)
}

// Revoke deletes owner's key. Keys of other owners are reported as not found.
func (s *PublicKeyService) Revoke(ctx context.Context, owner, key string) error {
	if err := s.repomanager.PublicKeys(s.db).Delete(ctx, owner, key); err != nil {
		return err
	}
	s.logger.Info(ctx, "public key revoked", "owner", owner, "fingerprint", keys.Fingerprint(key))
	return nil
}
