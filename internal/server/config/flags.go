package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags overlays values from command-line flags.
//
// Supported flags:
//
//	-a string    HTTP bind address (e.g. ":8080")
//	-g string    gRPC bind address (e.g. ":50051")
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret
//	-t duration  access token lifetime (e.g. "8h")
//
// args is filtered with flagx.FilterArgs first, so -c and any unknown flags
// do not make parsing fail.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&cfg.EndpointAddrGRPC, "g", cfg.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT secret key")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "access token validity duration")

	return fs.Parse(args)
}
