package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const authorizationKey = common.AuthorizationHeaderName

// isPublic reports whether a unary call may run without a token. Only the
// overall health probe (empty service name) is public; per-service checks
// and everything else need a valid bearer token.
func isPublic(fullMethod string, req any) bool {
	if fullMethod != healthpb.Health_Check_FullMethodName {
		return false
	}
	r, ok := req.(*healthpb.HealthCheckRequest)
	return ok && r.GetService() == ""
}

// accessTokenInterceptor admits a call only with a valid bearer token in the
// authorization metadata. The caller's identity is attached to the handler
// context.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if isPublic(info.FullMethod, req) {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(authorizationKey); len(values) > 0 {
			header = values[0]
		}
	}

	id, err := auth.ExtractIdentity(header, s.tokens)
	if err != nil {
		s.logger.Warn(ctx, "call rejected", "method", info.FullMethod, "reason", err.Error())
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	return handler(auth.WithIdentity(ctx, id), req)
}

// errorInterceptor turns service errors into gRPC statuses. Server-side
// failures are logged and their text is not sent to the caller.
func (s *GRPCServer) errorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	if _, ok := status.FromError(err); ok {
		return resp, err
	}

	code := mapErrorToCode(err)
	msg := err.Error()
	if code == codes.Internal {
		s.logger.Error(ctx, "call failed", "method", info.FullMethod, "error", err)
		msg = "internal error"
	}
	return nil, status.Error(code, msg)
}

func mapErrorToCode(err error) codes.Code {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return codes.InvalidArgument
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrUnauthenticated):
		return codes.Unauthenticated
	case errors.Is(err, common.ErrorNotFound):
		return codes.NotFound
	case errors.Is(err, common.ErrorAlreadyExists):
		return codes.AlreadyExists
	default:
		return codes.Internal
	}
}
