package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Rejections returned by ExtractIdentity. All of them wrap
// common.ErrUnauthenticated.
var (
	ErrMissingCredential   = fmt.Errorf("%w: missing credential", common.ErrUnauthenticated)
	ErrMalformedCredential = fmt.Errorf("%w: malformed credential", common.ErrUnauthenticated)
	ErrInvalidCredential   = fmt.Errorf("%w: invalid or expired credential", common.ErrUnauthenticated)
)

// Identity is the authenticated caller of a request.
type Identity struct {
	Subject string
}

// ExtractIdentity parses an Authorization header value of the form
// "Bearer <token>" and validates the token. It never touches storage.
//
// The returned error for a rejected token wraps both ErrInvalidCredential
// and the validator's reason, so callers can log the reason and still
// answer with a generic message.
func ExtractIdentity(header string, v TokenValidator) (*Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, ErrMissingCredential
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return nil, ErrMalformedCredential
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMalformedCredential
	}

	claims, err := v.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	return &Identity{Subject: claims.Subject}, nil
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
