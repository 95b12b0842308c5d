package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Run serves the application until the context is canceled, a shutdown
// signal arrives, or a component fails. It runs the HTTP server and the
// remote config refresher side by side and shuts both down together.
func Run(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil {
		return errors.New("server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return err
	}

	addr := ""
	if cfg.Config != nil {
		addr = cfg.Config.HTTP.Addr
	}
	server := NewHTTPServer(addr, handler)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", serveErr)
		}
		return nil
	})

	if cfg.Services.Config != nil {
		g.Go(func() error {
			if runErr := cfg.Services.Config.Run(gctx); runErr != nil && !errors.Is(runErr, context.Canceled) {
				return fmt.Errorf("config refresher: %w", runErr)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		// Fresh context: the group context is already canceled and would
		// abort the drain immediately.
		return ShutdownHTTPServer(context.Background(), server, logger)
	})

	return g.Wait()
}
