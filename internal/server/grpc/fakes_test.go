package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/logging"
	"github.com/dmitrijs2005/credbridge/internal/server/auth"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/google/uuid"
)

type fakeKeys struct {
	regResp  *models.PublicKey
	regErr   error
	regOwner models.User
	regLabel string

	listResp  []*models.PublicKey
	listErr   error
	listOwner string

	revokeErr   error
	revokeOwner string
}

func (f *fakeKeys) Register(ctx context.Context, owner models.User, candidate, label string) (*models.PublicKey, error) {
	f.regOwner, f.regLabel = owner, label
	return f.regResp, f.regErr
}

func (f *fakeKeys) List(ctx context.Context, owner string) ([]*models.PublicKey, error) {
	f.listOwner = owner
	return f.listResp, f.listErr
}

func (f *fakeKeys) Revoke(ctx context.Context, owner, key string) error {
	f.revokeOwner = owner
	return f.revokeErr
}

type fakeTokens struct {
	createResp *models.AccessToken
	createErr  error
	createOp   string

	lookup    map[string]*models.AccessToken
	lookupErr error

	revoked   []string
	revokeErr error

	grant     *models.ObjectGrant
	redeemErr error
}

func (f *fakeTokens) Create(ctx context.Context, bucket models.Bucket, operation string) (*models.AccessToken, error) {
	f.createOp = operation
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResp != nil {
		return f.createResp, nil
	}
	return &models.AccessToken{Token: "t", Bucket: bucket.ID, Operation: models.Operation(operation)}, nil
}

func (f *fakeTokens) Lookup(ctx context.Context, value string) (*models.AccessToken, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	t, ok := f.lookup[value]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeTokens) Revoke(ctx context.Context, value string) error {
	f.revoked = append(f.revoked, value)
	return f.revokeErr
}

func (f *fakeTokens) Redeem(ctx context.Context, value, objectKey string) (*models.ObjectGrant, error) {
	return f.grant, f.redeemErr
}

type fakeStats struct {
	rows []*models.StorageStatistic
	err  error
}

func (f *fakeStats) Record(ctx context.Context, stat *models.StorageStatistic) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, stat)
	return nil
}

func (f *fakeStats) ListByBucket(ctx context.Context, bucket uuid.UUID) ([]*models.StorageStatistic, error) {
	return f.rows, f.err
}

type fakeDirectory struct {
	users   map[string]*models.User
	buckets map[uuid.UUID]*models.Bucket
	userErr error
}

func (f *fakeDirectory) User(ctx context.Context, email string) (*models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	u, ok := f.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeDirectory) Bucket(ctx context.Context, id uuid.UUID) (*models.Bucket, error) {
	b, ok := f.buckets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return b, nil
}

const testSecret = "k"

var (
	alice       = &models.User{Email: "a@example.com"}
	bob         = &models.User{Email: "b@example.com"}
	aliceBucket = &models.Bucket{ID: uuid.MustParse("0b7a5f5e-1f4e-4d63-9a55-3f6f0c8d2b10"), Name: "media", Owner: alice.Email}
)

func newDirectory() *fakeDirectory {
	return &fakeDirectory{
		users:   map[string]*models.User{alice.Email: alice, bob.Email: bob},
		buckets: map[uuid.UUID]*models.Bucket{aliceBucket.ID: aliceBucket},
	}
}

func newServer(k keyService, tk tokenService, d directory) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), k, tk, &fakeStats{}, d, testSecret)
}

func asUser(u *models.User) context.Context {
	return context.WithValue(context.Background(), UserKey, u)
}

func mustJWT(email string, ttl time.Duration) string {
	tok, err := auth.GenerateToken(email, []byte(testSecret), ttl)
	if err != nil {
		panic(err)
	}
	return tok
}
