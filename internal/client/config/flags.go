package config

import (
	"flag"
	"os"
	"time"

	"github.com/gymfitness/membership/internal/flagx"
)

// parseFlags reads -a (API base URL), -t (timeout in seconds) and -f
// (session file). Other arguments, such as the subcommand, are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "membership API base URL")
	fs.StringVar(&cfg.SessionFile, "f", cfg.SessionFile, "local session database file")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
