// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-17
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// corsserve · Cobra root command
//
// `corsserve [port]` serves the working directory with permissive
// CORS headers. The optional flags enable developer conveniences
// (access log, file watching, metrics, rate limiting) and all of
// them default to off.
//
// Example:
//
//   corsserve            # http://localhost:8000
//   corsserve 3000 --watch
//   corsserve version
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"errors"
	"fmt"
	"strconv"

	"corsserve/internal/devserver"
	"github.com/spf13/cobra"
)

// Version is printed by the version sub-command.
const Version = "0.1.0"

// ErrInvalidPort is returned for a positional port outside 1-65535.
var ErrInvalidPort = errors.New("port must be an integer between 1 and 65535")

// Options is everything the root command collects.
type Options struct {
	Port        int
	AccessLog   string
	Watch       bool
	MetricsAddr string
	RateLimit   float64
	RateBurst   int
	Debug       bool
}

// RunFunc starts serving with the parsed options.
type RunFunc func(cmd *cobra.Command, opts Options) error

// NewRootCommand builds the corsserve command tree. run is invoked once the
// arguments are valid.
func NewRootCommand(run RunFunc) *cobra.Command {
	opts := Options{Port: devserver.DefaultPort}
	root := &cobra.Command{
		Use:   "corsserve [port]",
		Short: "Serve the working directory with permissive CORS headers",
		Long: `Serve the current directory over HTTP for front-end development.

Every response carries Access-Control-Allow-* headers and disables
caching. OPTIONS requests are answered with 200 on any path.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				port, err := ParsePort(args[0])
				if err != nil {
					return err
				}
				opts.Port = port
			}
			if opts.RateLimit < 0 {
				return fmt.Errorf("--rate-limit must not be negative")
			}
			return run(cmd, opts)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.AccessLog, "access-log", "", "append one line per request to this file")
	flags.BoolVar(&opts.Watch, "watch", false, "log file changes under the served directory")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. 127.0.0.1:9100)")
	flags.Float64Var(&opts.RateLimit, "rate-limit", 0, "maximum requests per second (0 disables)")
	flags.IntVar(&opts.RateBurst, "rate-burst", 1, "burst size for --rate-limit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print corsserve version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "corsserve v%s\n", Version)
		},
	})
	return root
}

// ParsePort parses a positional port argument.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > devserver.MaxPort {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, s)
	}
	return port, nil
}
