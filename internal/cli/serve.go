package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ossinfo/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr  string
	cache cacheFlags
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser and the Maven lookup over HTTP",
		Long: `Serve starts an HTTP API:

  POST /v1/coordinates?mode=tree|flat   parse a report, return its coordinates
  POST /v1/reports?mode=&format=        parse, look up and return the report
  GET  /v1/artifacts/{coordinate}       look up one artifact
  GET  /healthz                         liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.config.Addr != "" {
				opts.addr = c.config.Addr
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	addCacheFlags(cmd, &opts.cache)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	client, lookupCache, err := c.newMavenClient(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer lookupCache.Close()

	srv := server.New(client, server.Options{
		Concurrency: c.config.Concurrency,
		Logger:      logger.Infof,
	})

	printInfo("Listening on http://%s", opts.addr)
	printKeyValue("Concurrency", strconv.Itoa(c.config.Concurrency))
	printKeyValue("Cache TTL", c.config.CacheTTL.String())

	err = srv.ListenAndServe(ctx, opts.addr)
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
