package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	dictate "github.com/dictate-io/dictate"
	"github.com/dictate-io/dictate/config"
	httpx "github.com/dictate-io/dictate/internal/http"
)

const devTemplateDir = "web/templates"

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the application handler: router, base path
// mount, and the logging and recovery middleware around everything.
func BuildHTTPHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	templates, err := templateFS(appCfg.IsDev, logger)
	if err != nil {
		return nil, err
	}

	router, err := httpx.NewRouter(httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Config:       cfg.Services.Config,
		Documents:    cfg.Services.Documents,
		Pages:        cfg.Services.Pages,
		TemplateFS:   templates,
		BasePath:     appCfg.HTTP.BasePath,
		CookieDomain: appCfg.HTTP.CookieDomain,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Order: Recover -> Logging -> Mount -> Router
	return httpx.Chain(
		httpx.Mount(appCfg.HTTP.BasePath, router),
		httpx.Recover(logger),
		httpx.Logging(logger),
	), nil
}

// templateFS picks the view template source. Dev mode reads templates from
// disk so edits show up without a rebuild; otherwise the embedded copies are
// used.
func templateFS(isDev bool, logger *slog.Logger) (fs.FS, error) {
	if isDev {
		if info, err := os.Stat(devTemplateDir); err == nil && info.IsDir() {
			logger.Info("serving templates from disk", "dir", devTemplateDir)
			return os.DirFS(devTemplateDir), nil
		}
		logger.Warn("dev mode but template dir not found, using embedded templates", "dir", devTemplateDir)
	}

	sub, err := fs.Sub(dictate.TemplateFS, devTemplateDir)
	if err != nil {
		return nil, fmt.Errorf("embedded templates: %w", err)
	}
	return sub, nil
}

// NewHTTPServer builds the standard server around the application handler.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
