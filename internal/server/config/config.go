// Package config builds the server configuration from defaults, an optional
// JSON file, environment variables and command-line flags, applied in that
// order so later sources override earlier ones.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
)

// Config holds runtime settings for the todokeeper server. It is built once
// at startup and not mutated afterwards.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the REST API.
//   - EndpointAddrGRPC: bind address of the gRPC health endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - TokenTTL: lifetime of issued access tokens.
//   - CORSOrigins: origins allowed to call the API from a browser.
type Config struct {
	EndpointAddrHTTP string        `env:"ADDRESS"`
	EndpointAddrGRPC string        `env:"GRPC_ADDRESS"`
	DatabaseDSN      string        `env:"DATABASE_URL"`
	SecretKey        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL"`
	CORSOrigins      []string      `env:"CORS_ORIGINS" envSeparator:","`
}

// LoadDefaults populates Config with development defaults. The secret and
// the DSN have no default and must be supplied explicitly.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.TokenTTL = 8 * time.Hour
	c.CORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
}

// Validate reports missing required settings. Each failure wraps
// common.ErrConfiguration.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("%w: %w", common.ErrConfiguration, common.ErrSecretRequired)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("%w: %w", common.ErrConfiguration, common.ErrDatabaseDSNRequired)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: token ttl must be positive, got %s", common.ErrConfiguration, c.TokenTTL)
	}
	return nil
}

// LoadConfig builds and validates a Config from os.Args and the process
// environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds and validates a Config from the given arguments and the
// process environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
