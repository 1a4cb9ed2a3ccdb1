// Package config holds the runtime settings of the todokeeper CLI.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - GRPCAddr: host:port of the gRPC endpoint, used for health probes.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerURL      string        `env:"TODOKEEPER_SERVER_URL"`
	GRPCAddr       string        `env:"TODOKEEPER_GRPC_ADDRESS"`
	RequestTimeout time.Duration `env:"TODOKEEPER_TIMEOUT"`
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.GRPCAddr = "localhost:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig reads the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file, environment and flags, each
// overriding the previous one.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
