package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"safelogist/internal/logging"
	"safelogist/internal/server"
)

type serveOptions struct {
	addr    string
	data    string
	latency time.Duration
	jitter  time.Duration
	origins []string
	format  string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the company lookup endpoint locally",
		Long: `Serve GET ` + server.SearchPath + `?q=&limit= from an in-memory company list.

The list is the bundled seed unless --data points at a JSON array of
{"id","name","reviews_count"} objects. --latency and --jitter slow responses
down so debouncing and out-of-order answers can be watched in the search box.

Examples:
  safelogist serve
  safelogist serve --addr 127.0.0.1:9090 --latency 150ms --jitter 300ms
  safelogist serve --data companies.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := root.logLevel
			if level == "" {
				level = "info"
			}
			if _, err := logging.Init(logging.Options{
				Level:   level,
				Format:  opts.format,
				Writer:  cmd.ErrOrStderr(),
				Service: "safelogist-serve",
			}); err != nil {
				return err
			}

			ctx, stop := commandContext(cmd)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.addr, "addr", "127.0.0.1:8080", "listen address")
	f.StringVar(&opts.data, "data", "", "JSON file with companies (default: bundled seed)")
	f.DurationVar(&opts.latency, "latency", 0, "fixed delay added to every lookup")
	f.DurationVar(&opts.jitter, "jitter", 0, "random extra delay, up to this much")
	f.StringSliceVar(&opts.origins, "cors-origin", nil, "allowed CORS origins (default: any)")
	f.StringVar(&opts.format, "log-format", "console", "log format: console or json")
	return cmd
}

// runServe serves until ctx ends, then shuts the server down gracefully
func runServe(ctx context.Context, opts *serveOptions) error {
	log := logging.Component("serve")

	dir, err := server.LoadDirectory(opts.data)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler: server.New(dir, server.Options{
			Latency:        opts.latency,
			Jitter:         opts.jitter,
			AllowedOrigins: opts.origins,
		}).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", opts.addr, err)
	}

	log.Info().Str("addr", ln.Addr().String()).Int("companies", dir.Len()).
		Dur("latency", opts.latency).Dur("jitter", opts.jitter).
		Msgf("serving http://%s%s", ln.Addr(), server.SearchPath)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
