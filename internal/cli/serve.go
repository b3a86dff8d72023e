package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	slerrors "github.com/matzehuels/sourceloc/pkg/errors"
	"github.com/matzehuels/sourceloc/pkg/server"
	"github.com/matzehuels/sourceloc/pkg/source"
)

const (
	defaultAddress         = ":8080"
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 10 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 15 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var managedFallback bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve source-location lookups over HTTP",
		Long: `Start an HTTP server answering source-location lookups.

Endpoints:
  POST /v1/source-location   resolve the entity in the request body (JSON or YAML)
  GET  /v1/integrations      list configured integrations
  GET  /health               health check

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context(), c.v.GetString("address"), managedFallback)
		},
	}

	cmd.Flags().String("address", defaultAddress, "address to listen on")
	cmd.Flags().BoolVar(&managedFallback, "managed-by-fallback", false, "use backstage.io/managed-by-location when no source location is set")
	c.bindFlag("address", cmd.Flags().Lookup("address"))

	return cmd
}

func (c *CLI) runServe(ctx context.Context, address string, managedFallback bool) error {
	logger := loggerFromContext(ctx)

	reg, err := c.loadRegistry()
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithTimeout(serverRequestTimeout),
	}
	if managedFallback {
		opts = append(opts, server.WithResolverOptions(source.WithManagedByFallback()))
	}

	srv := &http.Server{
		Handler:      server.NewServer(reg, opts...),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	ln, err := net.Listen("tcp", address)
	if err != nil {
		return slerrors.Wrap(slerrors.ErrCodeInternal, err, "listen on %s", address)
	}
	logger.Info("Serving source-location API", "address", ln.Addr().String(), "integrations", len(reg.List()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return slerrors.Wrap(slerrors.ErrCodeInternal, err, "shutdown server")
	}
	return nil
}
