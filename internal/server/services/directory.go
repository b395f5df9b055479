package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DirectoryService resolves identities and buckets owned by the external
// identity and bucket stores. It never writes.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m}
}

func (s *DirectoryService) User(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

func (s *DirectoryService) Bucket(ctx context.Context, id uuid.UUID) (*models.Bucket, error) {
	return s.repomanager.Buckets(s.db).Find(ctx, id)
}
