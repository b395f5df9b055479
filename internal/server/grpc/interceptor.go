package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credbridge/internal/api"
	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/dmitrijs2005/credbridge/internal/server/auth"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const UserKey ctxKey = "user"

// Key and token management needs a caller identity. LookupToken, RedeemToken
// and Ping are authorized by the bearer token itself, or not at all.
var authenticatedMethods = map[string]bool{
	api.CredentialService_RegisterPublicKey_FullMethodName: true,
	api.CredentialService_ListPublicKeys_FullMethodName:    true,
	api.CredentialService_RevokePublicKey_FullMethodName:   true,
	api.CredentialService_CreateToken_FullMethodName:       true,
	api.CredentialService_RevokeToken_FullMethodName:       true,
	api.CredentialService_RecordStatistic_FullMethodName:   true,
	api.CredentialService_ListStatistics_FullMethodName:    true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !authenticatedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	email, err := auth.EmailFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	user, err := s.directory.User(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.Unauthenticated, "unknown user")
		}
		s.logger.Error(ctx, "identity lookup failed", "error", err.Error())
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}

	return handler(context.WithValue(ctx, UserKey, user), req)
}

func callerFromContext(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(UserKey).(*models.User)
	if !ok || user == nil {
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}
	return user, nil
}
