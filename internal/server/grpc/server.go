// Package grpc exposes the credential services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/credbridge/internal/api"
	"github.com/dmitrijs2005/credbridge/internal/logging"
	"github.com/dmitrijs2005/credbridge/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
)

type keyService interface {
	Register(ctx context.Context, owner models.User, candidate, label string) (*models.PublicKey, error)
	List(ctx context.Context, owner string) ([]*models.PublicKey, error)
	Revoke(ctx context.Context, owner, key string) error
}

type tokenService interface {
	Create(ctx context.Context, bucket models.Bucket, operation string) (*models.AccessToken, error)
	Lookup(ctx context.Context, value string) (*models.AccessToken, error)
	Revoke(ctx context.Context, value string) error
	Redeem(ctx context.Context, value, objectKey string) (*models.ObjectGrant, error)
}

type statisticsService interface {
	Record(ctx context.Context, stat *models.StorageStatistic) error
	ListByBucket(ctx context.Context, bucket uuid.UUID) ([]*models.StorageStatistic, error)
}

type directory interface {
	User(ctx context.Context, email string) (*models.User, error)
	Bucket(ctx context.Context, id uuid.UUID) (*models.Bucket, error)
}

var _ api.CredentialServiceServer = (*GRPCServer)(nil)

type GRPCServer struct {
	address   string
	keys      keyService
	tokens    tokenService
	stats     statisticsService
	directory directory
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, ks keyService, ts tokenService, ss statisticsService, d directory, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		keys:      ks,
		tokens:    ts,
		stats:     ss,
		directory: d,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterCredentialServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
