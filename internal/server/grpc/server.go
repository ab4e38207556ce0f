package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, username, password string, email *string) (*services.Session, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
}

type NoteService interface {
	List(ctx context.Context, owner string) ([]*models.Note, error)
	Create(ctx context.Context, owner string, in services.NoteInput) (*models.Note, error)
}

type GRPCServer struct {
	address string
	logger  logging.Logger
	gate    *auth.Gate
	users   UserService
	notes   NoteService
}

func NewGRPCServer(a string, l logging.Logger, gate *auth.Gate, us UserService, ns NoteService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		gate:    gate,
		users:   us,
		notes:   ns,
	}
}

// newServer creates the gRPC server with the auth interceptor and registers
// the service on it.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authInterceptor))
	RegisterNoteKeeperServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
