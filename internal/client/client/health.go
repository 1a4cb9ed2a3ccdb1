package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

// HealthClient probes the gRPC health service.
type HealthClient struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
	token  func() string
}

// withAccessToken attaches the bearer token to outgoing metadata.
func withAccessToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (h *HealthClient) accessTokenInterceptor(ctx context.Context, method string, req, reply any,
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	if h.token != nil {
		ctx = withAccessToken(ctx, h.token())
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewHealthClient connects lazily to addr. token, if set, supplies the
// bearer token sent with every call.
func NewHealthClient(addr string, token func() string, opts ...grpc.DialOption) (*HealthClient, error) {
	h := &HealthClient{token: token}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(h.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	h.conn = conn
	h.client = healthpb.NewHealthClient(conn)
	return h, nil
}

// Check returns the serving status of service, e.g. "SERVING". An empty
// service asks for the overall status, which needs no token.
func (h *HealthClient) Check(ctx context.Context, service string) (string, error) {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp.GetStatus().String(), nil
}

func (h *HealthClient) Close() error {
	return h.conn.Close()
}
