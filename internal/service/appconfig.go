package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dictate-io/dictate/internal/domain/model"
	obserrors "github.com/dictate-io/dictate/internal/observability/errors"
	"github.com/dictate-io/dictate/internal/ports"
)

const (
	defaultConfigTTL          = 30 * time.Second
	defaultConfigFetchTimeout = 5 * time.Second
	defaultConfigWarmup       = 15 * time.Second

	// warmupFailureLimit settles a cold cache before the window closes when
	// the source keeps failing, so guards stop deferring on a dead database.
	warmupFailureLimit = 3
)

// ConfigSnapshot is a point-in-time view of the remote configuration, taken
// once per request so route guards and handlers all see the same document.
//
// IsLoading=true means no fetch has succeeded yet and the warmup window is
// still open; guards treat the config as undecided rather than empty. When
// the window closes without a successful fetch the cache settles to an empty
// document, so an unreachable source degrades routes instead of deferring
// them forever. Once a fetch has succeeded the service serves the last good
// document even when later refreshes fail.
type ConfigSnapshot struct {
	Config    model.RemoteConfig
	IsLoading bool
	UpdatedAt time.Time
}

// ConfigServiceOptions groups dependencies for ConfigService.
type ConfigServiceOptions struct {
	Source ports.ConfigSource

	// TTL is how long a fetched document is served before a background
	// refresh is triggered. Zero means the default.
	TTL time.Duration

	// FetchTimeout bounds each fetch against the source. Zero means the
	// default.
	FetchTimeout time.Duration

	// WarmupWindow bounds how long a cold cache reports loading. Once it
	// closes without a successful fetch, snapshots resolve to an empty
	// config. Zero means the default.
	WarmupWindow time.Duration

	Logger *slog.Logger
}

// ConfigService caches the remote configuration document with a
// stale-while-revalidate policy: snapshots never block on the source, and
// concurrent refreshes collapse into a single fetch.
type ConfigService struct {
	source       ports.ConfigSource
	ttl          time.Duration
	fetchTimeout time.Duration
	warmup       time.Duration
	logger       *slog.Logger
	now          func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	loaded    bool
	current   model.RemoteConfig
	updatedAt time.Time
	fetchedAt time.Time
	startedAt time.Time
	failures  int
}

// NewConfigService constructs a new ConfigService. The cache starts cold;
// call Refresh (or Run) to warm it.
func NewConfigService(opts ConfigServiceOptions) *ConfigService {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultConfigTTL
	}
	fetchTimeout := opts.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = defaultConfigFetchTimeout
	}
	warmup := opts.WarmupWindow
	if warmup <= 0 {
		warmup = defaultConfigWarmup
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigService{
		source:       opts.Source,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		warmup:       warmup,
		logger:       logger,
		now:          time.Now,
		startedAt:    time.Now(),
	}
}

// Snapshot returns the current configuration view without blocking on the
// source. A cold cache yields a loading snapshot; a stale one is served as-is
// while a refresh runs in the background.
func (s *ConfigService) Snapshot() ConfigSnapshot {
	s.mu.Lock()
	s.settleLocked()
	loaded := s.loaded
	snap := ConfigSnapshot{
		Config:    s.current,
		IsLoading: !s.loaded,
		UpdatedAt: s.updatedAt,
	}
	stale := !loaded || s.now().Sub(s.fetchedAt) > s.ttl
	s.mu.Unlock()

	if stale {
		go s.refreshAsync()
	}
	return snap
}

// settleLocked resolves a cold cache to an empty config once the warmup
// window has closed or the source has failed repeatedly. fetchedAt stays
// zero, so background refreshes keep retrying the source. Callers hold mu.
func (s *ConfigService) settleLocked() {
	if s.loaded {
		return
	}
	if s.failures >= warmupFailureLimit || s.now().Sub(s.startedAt) >= s.warmup {
		s.loaded = true
	}
}

// Refresh fetches and parses the configuration document, replacing the cached
// copy on success. Concurrent callers share a single fetch.
func (s *ConfigService) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("fetch", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()

		raw, updatedAt, err := s.source.Fetch(fetchCtx)
		if err != nil {
			s.recordColdFailure()
			return nil, fmt.Errorf("fetch config: %w", err)
		}

		cfg, err := model.ParseRemoteConfig(raw)
		if err != nil {
			s.recordColdFailure()
			return nil, fmt.Errorf("parse config: %w", err)
		}

		s.mu.Lock()
		s.loaded = true
		s.failures = 0
		s.current = *cfg
		s.updatedAt = updatedAt
		s.fetchedAt = s.now()
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// recordColdFailure counts fetch failures while the cache is still cold,
// feeding the warmup settlement. Failures after the first successful load are
// not counted; the last good document keeps serving.
func (s *ConfigService) recordColdFailure() {
	s.mu.Lock()
	if !s.loaded {
		s.failures++
		s.settleLocked()
	}
	s.mu.Unlock()
}

func (s *ConfigService) refreshAsync() {
	if err := s.Refresh(context.Background()); err != nil {
		s.logger.Warn("config refresh failed", "error", err, "error_type", obserrors.Classify(err))
	}
}

// Run refreshes the configuration on an interval until the context is
// canceled. Intended to be started alongside the HTTP server so the cache is
// warm before the first request needs it.
func (s *ConfigService) Run(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("initial config load failed", "error", err, "error_type", obserrors.Classify(err))
	}

	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("config refresh failed", "error", err, "error_type", obserrors.Classify(err))
			}
		}
	}
}
