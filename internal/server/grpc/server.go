// Package grpc serves the gRPC side of todokeeper: the standard health
// service plus the bearer-token guard that every non-public method runs
// behind.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name of the todokeeper API. Checking it
// requires a bearer token.
const ServiceName = common.HealthServiceName

type GRPCServer struct {
	address string
	logger  logging.Logger
	tokens  auth.TokenValidator
	health  *health.Server
	srv     *grpc.Server
}

func NewGRPCServer(a string, l logging.Logger, tokens auth.TokenValidator) *GRPCServer {
	s := &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		tokens:  tokens,
		health:  health.NewServer(),
	}

	s.srv = grpc.NewServer(grpc.ChainUnaryInterceptor(s.errorInterceptor, s.accessTokenInterceptor))
	healthpb.RegisterHealthServer(s.srv, s.health)
	reflection.Register(s.srv)

	s.SetServing(false)
	return s
}

// SetServing sets both the overall and the ServiceName health status.
func (s *GRPCServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		s.health.Shutdown()
		s.srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", ln.Addr().String())

	if err := s.srv.Serve(ln); err != nil {
		return err
	}
	return nil
}
