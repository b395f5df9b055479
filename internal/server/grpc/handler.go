package grpc

import (
	"context"

	"github.com/dmitrijs2005/credbridge/internal/api"
	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) RegisterPublicKey(ctx context.Context, req *api.RegisterPublicKeyRequest) (*api.RegisterPublicKeyResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.keys.Register(ctx, *user, req.Key, req.Label)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RegisterPublicKeyResponse{PublicKey: rec}, nil
}

func (s *GRPCServer) ListPublicKeys(ctx context.Context, req *api.ListPublicKeysRequest) (*api.ListPublicKeysResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.keys.List(ctx, user.Email)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ListPublicKeysResponse{PublicKeys: list}, nil
}

func (s *GRPCServer) RevokePublicKey(ctx context.Context, req *api.RevokePublicKeyRequest) (*api.RevokePublicKeyResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.keys.Revoke(ctx, user.Email, req.Key); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RevokePublicKeyResponse{}, nil
}

func (s *GRPCServer) CreateToken(ctx context.Context, req *api.CreateTokenRequest) (*api.CreateTokenResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.Bucket)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid bucket id")
	}

	bucket, err := s.ownedBucket(ctx, user, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	token, err := s.tokens.Create(ctx, *bucket, req.Operation)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.CreateTokenResponse{Token: token}, nil
}

func (s *GRPCServer) LookupToken(ctx context.Context, req *api.LookupTokenRequest) (*api.LookupTokenResponse, error) {
	token, err := s.tokens.Lookup(ctx, req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.LookupTokenResponse{Token: token}, nil
}

func (s *GRPCServer) RevokeToken(ctx context.Context, req *api.RevokeTokenRequest) (*api.RevokeTokenResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Lookup(ctx, req.Token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if _, err := s.ownedBucket(ctx, user, token.Bucket); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.tokens.Revoke(ctx, req.Token); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RevokeTokenResponse{}, nil
}

func (s *GRPCServer) RedeemToken(ctx context.Context, req *api.RedeemTokenRequest) (*api.RedeemTokenResponse, error) {
	grant, err := s.tokens.Redeem(ctx, req.Token, req.ObjectKey)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RedeemTokenResponse{Grant: grant}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ownedBucket(ctx context.Context, user *models.User, id uuid.UUID) (*models.Bucket, error) {
	bucket, err := s.directory.Bucket(ctx, id)
	if err != nil {
		return nil, err
	}
	if bucket.Owner != user.Email {
		return nil, common.ErrorForbidden
	}
	return bucket, nil
}

// RecordStatistic stores a usage row for a bucket the caller owns.
func (s *GRPCServer) RecordStatistic(ctx context.Context, req *api.RecordStatisticRequest) (*api.RecordStatisticResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req.Statistic == nil {
		return nil, status.Error(codes.InvalidArgument, "missing statistic")
	}

	if _, err := s.ownedBucket(ctx, user, req.Statistic.Bucket); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.stats.Record(ctx, req.Statistic); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RecordStatisticResponse{}, nil
}

func (s *GRPCServer) ListStatistics(ctx context.Context, req *api.ListStatisticsRequest) (*api.ListStatisticsResponse, error) {
	user, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.Bucket)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid bucket id")
	}

	if _, err := s.ownedBucket(ctx, user, id); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	list, err := s.stats.ListByBucket(ctx, id)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ListStatisticsResponse{Statistics: list}, nil
}
