package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/dictate-io/dictate/config"
	"github.com/dictate-io/dictate/internal/data"
	"github.com/dictate-io/dictate/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Config    *service.ConfigService
	Documents *service.DocumentService
	Pages     *service.PageService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and services from shared infrastructure.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	configSvc := service.NewConfigService(service.ConfigServiceOptions{
		Source:       data.NewAppConfigRepo(deps.DB),
		TTL:          appCfg.RemoteConfig.RefreshTTL,
		FetchTimeout: appCfg.RemoteConfig.FetchTimeout,
		WarmupWindow: appCfg.RemoteConfig.WarmupWindow,
		Logger:       logger,
	})

	documentSvc := service.NewDocumentService(service.DocumentServiceOptions{
		Documents:   data.NewDocumentRepo(deps.DB),
		ShareTokens: data.NewShareTokenRepo(deps.DB),
		Logger:      logger,
	})

	authSvc := BuildAuthService(AuthConfig{
		Auth:        appCfg.Auth,
		DB:          deps.DB,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})

	return ServiceContainer{
		Auth:      authSvc,
		Config:    configSvc,
		Documents: documentSvc,
		Pages:     service.NewPageService(configSvc),
	}
}
