package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Validation messages are
// passed to the caller, storage failures are logged and hidden.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidKeyFormat),
		errors.Is(err, common.ErrInvalidOperation),
		errors.Is(err, common.ErrInvalidObjectKey),
		errors.Is(err, common.ErrorIncorrectMetadata):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrDuplicateKey):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err.Error())
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}
