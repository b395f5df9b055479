package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/credbridge/internal/dbx"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/buckets"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/publickeys"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/statistics"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// pick *sql.DB or a transaction per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Buckets(db dbx.DBTX) buckets.Repository
	PublicKeys(db dbx.DBTX) publickeys.Repository
	AccessTokens(db dbx.DBTX) accesstokens.Repository
	Statistics(db dbx.DBTX) statistics.Repository
}
