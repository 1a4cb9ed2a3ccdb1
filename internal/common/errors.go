// Package common defines shared constants and sentinel errors used across
// client and server layers of todokeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists") // 409, duplicate account

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid email or password") // 401, invalid credentials
	ErrorValidation   = errors.New("validation error")          // 400

	ErrHashing     = errors.New("password hashing failed") // 500
	ErrPersistence = errors.New("persistence error")       // 500, wraps store failures

	// Startup errors. Fatal, never returned to a client.
	ErrConfiguration       = errors.New("configuration error")
	ErrSecretRequired      = errors.New("token signing secret is required")
	ErrDatabaseDSNRequired = errors.New("database connection string is required")

	// Request guard errors. Every one of them is reported to the client as
	// a plain 401.
	ErrUnauthenticated = errors.New("unauthenticated")

	// Token validation reasons, for diagnostics only.
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)
