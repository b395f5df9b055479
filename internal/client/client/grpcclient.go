// Package client is the gRPC client of the credential service used by the
// credctl command line tool.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credbridge/internal/api"
	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type rpcClient interface {
	RegisterPublicKey(ctx context.Context, in *api.RegisterPublicKeyRequest, opts ...grpc.CallOption) (*api.RegisterPublicKeyResponse, error)
	ListPublicKeys(ctx context.Context, in *api.ListPublicKeysRequest, opts ...grpc.CallOption) (*api.ListPublicKeysResponse, error)
	RevokePublicKey(ctx context.Context, in *api.RevokePublicKeyRequest, opts ...grpc.CallOption) (*api.RevokePublicKeyResponse, error)
	CreateToken(ctx context.Context, in *api.CreateTokenRequest, opts ...grpc.CallOption) (*api.CreateTokenResponse, error)
	LookupToken(ctx context.Context, in *api.LookupTokenRequest, opts ...grpc.CallOption) (*api.LookupTokenResponse, error)
	RevokeToken(ctx context.Context, in *api.RevokeTokenRequest, opts ...grpc.CallOption) (*api.RevokeTokenResponse, error)
	RedeemToken(ctx context.Context, in *api.RedeemTokenRequest, opts ...grpc.CallOption) (*api.RedeemTokenResponse, error)
	RecordStatistic(ctx context.Context, in *api.RecordStatisticRequest, opts ...grpc.CallOption) (*api.RecordStatisticResponse, error)
	ListStatistics(ctx context.Context, in *api.ListStatisticsRequest, opts ...grpc.CallOption) (*api.ListStatisticsResponse, error)
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpcClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects lazily to endpointURL; accessToken is the caller
// JWT and may be set later with SetAccessToken.
func NewGRPCClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewCredentialServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) SetAccessToken(token string) { s.accessToken = token }

func (s *GRPCClient) HasAccessToken() bool { return s.accessToken != "" }

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) RegisterPublicKey(ctx context.Context, key, label string) (*models.PublicKey, error) {
	resp, err := s.client.RegisterPublicKey(ctx, &api.RegisterPublicKeyRequest{Key: key, Label: label})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.PublicKey, nil
}

func (s *GRPCClient) ListPublicKeys(ctx context.Context) ([]*models.PublicKey, error) {
	resp, err := s.client.ListPublicKeys(ctx, &api.ListPublicKeysRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.PublicKeys, nil
}

func (s *GRPCClient) RevokePublicKey(ctx context.Context, key string) error {
	_, err := s.client.RevokePublicKey(ctx, &api.RevokePublicKeyRequest{Key: key})
	return s.mapError(err)
}

func (s *GRPCClient) CreateToken(ctx context.Context, bucket, operation string) (*models.AccessToken, error) {
	resp, err := s.client.CreateToken(ctx, &api.CreateTokenRequest{Bucket: bucket, Operation: operation})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Token, nil
}

func (s *GRPCClient) LookupToken(ctx context.Context, token string) (*models.AccessToken, error) {
	resp, err := s.client.LookupToken(ctx, &api.LookupTokenRequest{Token: token})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Token, nil
}

func (s *GRPCClient) RevokeToken(ctx context.Context, token string) error {
	_, err := s.client.RevokeToken(ctx, &api.RevokeTokenRequest{Token: token})
	return s.mapError(err)
}

func (s *GRPCClient) RedeemToken(ctx context.Context, token, objectKey string) (*models.ObjectGrant, error) {
	resp, err := s.client.RedeemToken(ctx, &api.RedeemTokenRequest{Token: token, ObjectKey: objectKey})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Grant, nil
}

func (s *GRPCClient) RecordStatistic(ctx context.Context, stat *models.StorageStatistic) error {
	_, err := s.client.RecordStatistic(ctx, &api.RecordStatisticRequest{Statistic: stat})
	return s.mapError(err)
}

func (s *GRPCClient) ListStatistics(ctx context.Context, bucket string) ([]*models.StorageStatistic, error) {
	resp, err := s.client.ListStatistics(ctx, &api.ListStatisticsRequest{Bucket: bucket})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Statistics, nil
}
