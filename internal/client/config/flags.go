package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags overlays values from command-line flags.
//
//	-a string    REST API base URL (e.g. "http://localhost:8080")
//	-g string    gRPC address for health probes
//	-t duration  request timeout
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC address")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(args)
}
