package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netgraph/internal/server"
	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/pipeline"
)

// serveCommand creates the serve command, which serves diagrams over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		cacheTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [counts...]",
		Short: "Serve diagrams over HTTP",
		Long: `Serve the diagram over HTTP until interrupted.

Routes:
  /               HTML page embedding the interactive SVG
  /diagram.svg    also .png, .pdf, .json and .dot
  /healthz        liveness probe

Query parameters override the configured network per request:
layers=3,6,10  seed=7  hover=2:0  viz=nodelink  captions=true

Rendered artifacts are kept in memory for --cache-ttl. A TTL of 0 disables
the cache.`,
		Example: `  netgraph serve
  netgraph serve --addr 127.0.0.1:9000 784 128 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.loadOptions(cmd, args)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), addr, cacheTTL, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", time.Minute, "how long rendered artifacts stay cached (0 disables)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, cacheTTL time.Duration, opts pipeline.Options) error {
	if cacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache TTL must not be negative, got %s", cacheTTL)
	}

	srv := server.New(addr, opts, pipeline.NewRunner(c.Logger), c.Logger)
	if cacheTTL > 0 {
		srv.Cache = cache.NewMemoryCache(cache.DefaultMaxEntries)
		srv.CacheTTL = cacheTTL
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}
	printInfo("Serving on %s", StyleLink.Render("http://"+srv.ListenAddr()+"/"))
	printNextStep("Stop with", "Ctrl+C")

	<-ctx.Done()
	if err := srv.Stop(); err != nil {
		printWarning("shutdown: %v", err)
	}
	return ctx.Err()
}
