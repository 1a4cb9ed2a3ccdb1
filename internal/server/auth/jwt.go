// Package auth issues and validates access tokens and turns an inbound
// authorization header into an authenticated identity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenIssuer signs new access tokens.
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// TokenValidator verifies access tokens. Rejections wrap one of
// common.ErrTokenMalformed, common.ErrTokenBadSignature or
// common.ErrTokenExpired.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// TokenCodec implements TokenIssuer and TokenValidator with HS256 JWTs
// carrying the standard "sub" and "exp" claims.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

type Option func(*TokenCodec)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(c *TokenCodec) { c.now = now }
}

func NewTokenCodec(secret []byte, opts ...Option) (*TokenCodec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, common.ErrSecretRequired)
	}

	c := &TokenCodec{secret: secret, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *TokenCodec) Validate(tokenString string) (*Claims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: empty subject", common.ErrTokenMalformed)
	}

	return &Claims{Subject: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// classify maps jwt errors onto our rejection reasons. The signature is
// checked before the claims, so a forged token never reports Expired.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", common.ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", common.ErrTokenMalformed, err)
	}
}
