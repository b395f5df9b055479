package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/dbx"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/accesstokens"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/buckets"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/publickeys"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/statistics"
	"github.com/dmitrijs2005/credbridge/internal/server/repositories/users"
	"github.com/google/uuid"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// ---- public keys ----

type fakeKeysRepo struct {
	mu   sync.Mutex
	rows map[string]models.PublicKey

	findErr   error
	createErr error
	listErr   error
	deleteErr error
}

func newFakeKeysRepo() *fakeKeysRepo {
	return &fakeKeysRepo{rows: map[string]models.PublicKey{}}
}

func (f *fakeKeysRepo) Create(ctx context.Context, k *models.PublicKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[k.Key]; ok {
		return common.ErrDuplicateKey
	}
	k.CreatedAt = time.Now()
	f.rows[k.Key] = *k
	return nil
}

func (f *fakeKeysRepo) Find(ctx context.Context, key string) (*models.PublicKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	k, ok := f.rows[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &k, nil
}

func (f *fakeKeysRepo) ListByOwner(ctx context.Context, owner string) ([]*models.PublicKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.PublicKey
	for _, k := range f.rows {
		if k.Owner == owner {
			k := k
			out = append(out, &k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeKeysRepo) Delete(ctx context.Context, owner, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	k, ok := f.rows[key]
	if !ok || k.Owner != owner {
		return common.ErrorNotFound
	}
	delete(f.rows, key)
	return nil
}

// ---- access tokens ----

type fakeTokensRepo struct {
	mu   sync.Mutex
	rows map[string]models.AccessToken

	createErr error
	findErr   error
	deleteErr error
	purgeErr  error
	purgedAt  time.Time
}

func newFakeTokensRepo() *fakeTokensRepo {
	return &fakeTokensRepo{rows: map[string]models.AccessToken{}}
}

func (f *fakeTokensRepo) Create(ctx context.Context, t *models.AccessToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.rows[t.Token]; ok {
		return common.ErrDuplicateKey
	}
	f.rows[t.Token] = *t
	return nil
}

func (f *fakeTokensRepo) Find(ctx context.Context, token string) (*models.AccessToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.rows[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (f *fakeTokensRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, token)
	return nil
}

func (f *fakeTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	f.purgedAt = now
	var n int64
	for k, t := range f.rows {
		if t.Expired(now) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

// ---- buckets, users, statistics ----

type fakeBucketsRepo struct {
	rows map[uuid.UUID]models.Bucket
	err  error
}

func (f *fakeBucketsRepo) Find(ctx context.Context, id uuid.UUID) (*models.Bucket, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, ok := f.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

type fakeUsersRepo struct {
	rows map[string]models.User
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.rows[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

type fakeStatsRepo struct {
	rows []*models.StorageStatistic
	err  error
}

func (f *fakeStatsRepo) Create(ctx context.Context, s *models.StorageStatistic) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, s)
	return nil
}

func (f *fakeStatsRepo) ListByBucket(ctx context.Context, bucket uuid.UUID) ([]*models.StorageStatistic, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*models.StorageStatistic
	for _, s := range f.rows {
		if s.Bucket == bucket {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---- manager ----

type fakeRepoManager struct {
	keys    *fakeKeysRepo
	tokens  *fakeTokensRepo
	buckets *fakeBucketsRepo
	users   *fakeUsersRepo
	stats   *fakeStatsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		keys:    newFakeKeysRepo(),
		tokens:  newFakeTokensRepo(),
		buckets: &fakeBucketsRepo{rows: map[uuid.UUID]models.Bucket{}},
		users:   &fakeUsersRepo{rows: map[string]models.User{}},
		stats:   &fakeStatsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository               { return m.users }
func (m *fakeRepoManager) Buckets(db dbx.DBTX) buckets.Repository           { return m.buckets }
func (m *fakeRepoManager) PublicKeys(db dbx.DBTX) publickeys.Repository     { return m.keys }
func (m *fakeRepoManager) AccessTokens(db dbx.DBTX) accesstokens.Repository { return m.tokens }
func (m *fakeRepoManager) Statistics(db dbx.DBTX) statistics.Repository     { return m.stats }
