// Package grpc exposes the credential and character services over gRPC with
// the JSON codec from rpcapi.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/rpgkeeper/internal/logging"
	"github.com/dmitrijs2005/rpgkeeper/internal/rpcapi"
	"github.com/dmitrijs2005/rpgkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// CredentialService is the account surface the server needs.
type CredentialService interface {
	Register(ctx context.Context, username, password string) (*services.ServiceResult[int64], error)
	Login(ctx context.Context, username, password string) (*services.ServiceResult[string], error)
	ResetPassword(ctx context.Context, username, oldPassword, newPassword string) (*services.ServiceResult[int64], error)
}

// CharacterStore is the character surface the server needs.
type CharacterStore interface {
	AddCharacter(ctx context.Context, req services.AddCharacterRequest) (*services.ServiceResult[[]services.CharacterView], error)
	GetAllCharacters(ctx context.Context) (*services.ServiceResult[[]services.CharacterView], error)
	GetCharacterByID(ctx context.Context, id int64) (*services.ServiceResult[services.CharacterView], error)
	UpdateCharacter(ctx context.Context, req services.UpdateCharacterRequest) (*services.ServiceResult[services.CharacterView], error)
	DeleteCharacter(ctx context.Context, id int64) (*services.ServiceResult[[]services.CharacterView], error)
	GetPortraitUploadURL(ctx context.Context, id int64) (*services.ServiceResult[services.PortraitURL], error)
	GetPortraitDownloadURL(ctx context.Context, id int64) (*services.ServiceResult[services.PortraitURL], error)
}

type GRPCServer struct {
	address    string
	users      CredentialService
	characters CharacterStore
	logger     logging.Logger
	jwtSecret  []byte
}

func NewGRPCServer(a string, l logging.Logger, us CredentialService, cs CharacterStore, secretKey []byte) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		users:      us,
		characters: cs,
		jwtSecret:  secretKey,
	}
}

func (s *GRPCServer) newServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	rpcapi.RegisterRPGKeeperServiceServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(rpcapi.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv, hs
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
	srv, hs := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
