package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/credbridge/internal/api"
	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fake rpc client
 *************/

type fakeRPC struct {
	lastRegisterReq *api.RegisterPublicKeyRequest
	lastCreateReq   *api.CreateTokenRequest
	lastRedeemReq   *api.RedeemTokenRequest
	lastStatReq     *api.RecordStatisticRequest

	registerResp *api.RegisterPublicKeyResponse
	listResp     *api.ListPublicKeysResponse
	createResp   *api.CreateTokenResponse
	lookupResp   *api.LookupTokenResponse
	redeemResp   *api.RedeemTokenResponse
	statsResp    *api.ListStatisticsResponse
	pingResp     *api.PingResponse

	err error
}

func (f *fakeRPC) RegisterPublicKey(ctx context.Context, in *api.RegisterPublicKeyRequest, opts ...grpc.CallOption) (*api.RegisterPublicKeyResponse, error) {
	f.lastRegisterReq = in
	return f.registerResp, f.err
}
func (f *fakeRPC) ListPublicKeys(ctx context.Context, in *api.ListPublicKeysRequest, opts ...grpc.CallOption) (*api.ListPublicKeysResponse, error) {
	return f.listResp, f.err
}
func (f *fakeRPC) RevokePublicKey(ctx context.Context, in *api.RevokePublicKeyRequest, opts ...grpc.CallOption) (*api.RevokePublicKeyResponse, error) {
	return &api.RevokePublicKeyResponse{}, f.err
}
func (f *fakeRPC) CreateToken(ctx context.Context, in *api.CreateTokenRequest, opts ...grpc.CallOption) (*api.CreateTokenResponse, error) {
	f.lastCreateReq = in
	return f.createResp, f.err
}
func (f *fakeRPC) LookupToken(ctx context.Context, in *api.LookupTokenRequest, opts ...grpc.CallOption) (*api.LookupTokenResponse, error) {
	return f.lookupResp, f.err
}
func (f *fakeRPC) RevokeToken(ctx context.Context, in *api.RevokeTokenRequest, opts ...grpc.CallOption) (*api.RevokeTokenResponse, error) {
	return &api.RevokeTokenResponse{}, f.err
}
func (f *fakeRPC) RedeemToken(ctx context.Context, in *api.RedeemTokenRequest, opts ...grpc.CallOption) (*api.RedeemTokenResponse, error) {
	f.lastRedeemReq = in
	return f.redeemResp, f.err
}
func (f *fakeRPC) RecordStatistic(ctx context.Context, in *api.RecordStatisticRequest, opts ...grpc.CallOption) (*api.RecordStatisticResponse, error) {
	f.lastStatReq = in
	return &api.RecordStatisticResponse{}, f.err
}
func (f *fakeRPC) ListStatistics(ctx context.Context, in *api.ListStatisticsRequest, opts ...grpc.CallOption) (*api.ListStatisticsResponse, error) {
	return f.statsResp, f.err
}
func (f *fakeRPC) Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error) {
	return f.pingResp, f.err
}

func newTestClient(f *fakeRPC) *GRPCClient {
	return &GRPCClient{client: f}
}

/*************
 * Tests
 *************/

func TestWithAccessToken_ReplacesExisting(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "old", "x-other", "1")
	ctx = withAccessToken(ctx, "new")

	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	require.Equal(t, []string{"new"}, md.Get(common.AccessTokenHeaderName))
	require.Equal(t, []string{"1"}, md.Get("x-other"))
}

func TestAccessTokenInterceptor(t *testing.T) {
	var got metadata.MD
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		got, _ = metadata.FromOutgoingContext(ctx)
		return nil
	}

	c := &GRPCClient{}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker))
	require.Empty(t, got.Get(common.AccessTokenHeaderName))

	c.SetAccessToken("jwt")
	require.True(t, c.HasAccessToken())
	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/m", nil, nil, nil, invoker))
	require.Equal(t, []string{"jwt"}, got.Get(common.AccessTokenHeaderName))
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrUnauthorized},
		{codes.PermissionDenied, ErrForbidden},
		{codes.NotFound, ErrNotFound},
		{codes.AlreadyExists, ErrAlreadyExists},
		{codes.InvalidArgument, ErrInvalidArgument},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
	}
	for _, tt := range tests {
		err := c.mapError(status.Error(tt.code, "x"))
		require.ErrorIs(t, err, tt.want, tt.code.String())
	}

	require.NoError(t, c.mapError(nil))
	err := c.mapError(status.Error(codes.Internal, "boom"))
	require.ErrorContains(t, err, "rpc error")
}

func TestPing(t *testing.T) {
	c := newTestClient(&fakeRPC{pingResp: &api.PingResponse{Status: "OK"}})
	require.NoError(t, c.Ping(context.Background()))

	c = newTestClient(&fakeRPC{pingResp: &api.PingResponse{Status: "DOWN"}})
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestRegisterPublicKey(t *testing.T) {
	f := &fakeRPC{registerResp: &api.RegisterPublicKeyResponse{PublicKey: &models.PublicKey{Key: "02ab"}}}
	c := newTestClient(f)

	rec, err := c.RegisterPublicKey(context.Background(), "02ab", "laptop")
	require.NoError(t, err)
	require.Equal(t, "02ab", rec.Key)
	require.Equal(t, "laptop", f.lastRegisterReq.Label)

	f.err = status.Error(codes.AlreadyExists, common.ErrDuplicateKey.Error())
	_, err = c.RegisterPublicKey(context.Background(), "02ab", "")
	require.ErrorIs(t, err, ErrAlreadyExists)
	require.ErrorContains(t, err, "public key is already registered")
}

func TestTokens(t *testing.T) {
	f := &fakeRPC{
		createResp: &api.CreateTokenResponse{Token: &models.AccessToken{Token: "t", Operation: models.OperationPush}},
		lookupResp: &api.LookupTokenResponse{Token: &models.AccessToken{Token: "t"}},
		redeemResp: &api.RedeemTokenResponse{Grant: &models.ObjectGrant{URL: "http://x"}},
	}
	c := newTestClient(f)
	ctx := context.Background()

	tok, err := c.CreateToken(ctx, "b", "PUSH")
	require.NoError(t, err)
	require.Equal(t, "t", tok.Token)
	require.Equal(t, "PUSH", f.lastCreateReq.Operation)

	tok, err = c.LookupToken(ctx, "t")
	require.NoError(t, err)
	require.Equal(t, "t", tok.Token)

	grant, err := c.RedeemToken(ctx, "t", "a.txt")
	require.NoError(t, err)
	require.Equal(t, "http://x", grant.URL)
	require.Equal(t, "a.txt", f.lastRedeemReq.ObjectKey)

	require.NoError(t, c.RevokeToken(ctx, "t"))

	f.err = status.Error(codes.NotFound, "not found")
	_, err = c.LookupToken(ctx, "t")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, c.RevokeToken(ctx, "t"), ErrNotFound)
}

func TestStatistics(t *testing.T) {
	f := &fakeRPC{statsResp: &api.ListStatisticsResponse{Statistics: []*models.StorageStatistic{{BucketEntry: "a"}}}}
	c := newTestClient(f)

	require.NoError(t, c.RecordStatistic(context.Background(), &models.StorageStatistic{BucketEntry: "a"}))
	require.Equal(t, "a", f.lastStatReq.Statistic.BucketEntry)

	rows, err := c.ListStatistics(context.Background(), "b")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	f.err = errors.New("plain")
	_, err = c.ListStatistics(context.Background(), "b")
	require.Error(t, err)
}
