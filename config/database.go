package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"dictate"`
	Password string `env:"PASSWORD" envDefault:"dictate"`
	Name     string `env:"NAME"     envDefault:"dictate"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration for the session store.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// RemoteConfigConfig controls caching of the application config document.
type RemoteConfigConfig struct {
	// RefreshTTL is how long a fetched config document is served before the
	// background refresher fetches a new one.
	RefreshTTL time.Duration `env:"REMOTE_CONFIG_TTL" envDefault:"30s"`

	// FetchTimeout bounds each fetch against the database.
	FetchTimeout time.Duration `env:"REMOTE_CONFIG_FETCH_TIMEOUT" envDefault:"5s"`

	// WarmupWindow bounds how long routes may defer on an unloaded config
	// after startup before it resolves to an empty document.
	WarmupWindow time.Duration `env:"REMOTE_CONFIG_WARMUP_WINDOW" envDefault:"15s"`
}

// Sanitize applies guardrails to remote config cache settings.
func (c *RemoteConfigConfig) Sanitize() {
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = 30 * time.Second
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 5 * time.Second
	}
	if c.WarmupWindow <= 0 {
		c.WarmupWindow = 15 * time.Second
	}
}
