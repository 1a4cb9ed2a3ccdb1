// Package common contains shared constants and sentinel errors used across
// todokeeper components.
package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key carrying
// the bearer credential.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"

// HealthServiceName is the gRPC health service name of the API. Unlike the
// overall status, checking it requires a bearer token.
const HealthServiceName = "todokeeper"
