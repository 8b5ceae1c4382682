package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/rosterview/external/rosterapi"
	"github.com/riskibarqy/rosterview/internal/config"
	"github.com/riskibarqy/rosterview/internal/domain/player"
	cacherepo "github.com/riskibarqy/rosterview/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/rosterview/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/rosterview/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/rosterview/internal/interfaces/httpapi"
	"github.com/riskibarqy/rosterview/internal/platform/cache"
	"github.com/riskibarqy/rosterview/internal/platform/logging"
	"github.com/riskibarqy/rosterview/internal/platform/resilience"
	"github.com/riskibarqy/rosterview/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const redisKeyPrefix = "rosterview:"

// CloseFunc releases resources opened while building the server.
type CloseFunc func(ctx context.Context) error

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, CloseFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []CloseFunc
	closeAll := func(ctx context.Context) error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	client := rosterapi.NewClient(rosterapi.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.RosterAPITimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:      cfg.RosterAPIBaseURL,
		Username:     cfg.RosterAPIUsername,
		Password:     cfg.RosterAPIPassword,
		Timeout:      cfg.RosterAPITimeout,
		MaxRetries:   cfg.RosterAPIMaxRetries,
		RetryBackoff: cfg.RosterAPIRetryBackoff,
		WorkerCount:  cfg.RosterAPIWorkerCount,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RosterAPICircuitEnabled,
			FailureThreshold: cfg.RosterAPICircuitFailureCount,
			OpenTimeout:      cfg.RosterAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RosterAPICircuitHalfOpenMaxReq,
		},
	})

	var (
		source      player.Source = client
		invalidator httpapi.WeekInvalidator
	)
	if cfg.CacheEnabled {
		backend, closeBackend, err := newCacheBackend(ctx, cfg)
		if err != nil {
			_ = closeAll(ctx)
			return nil, nil, err
		}
		if closeBackend != nil {
			closers = append(closers, closeBackend)
		}
		cached := cacherepo.NewRosterSource(client, cache.NewLoader(backend, logger))
		source, invalidator = cached, cached
		logger.Info("roster cache enabled", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL.String())
	}

	snapshots, closeSnapshots, err := newSnapshotRepository(ctx, cfg)
	if err != nil {
		_ = closeAll(ctx)
		return nil, nil, err
	}
	if closeSnapshots != nil {
		closers = append(closers, closeSnapshots)
	}

	service := usecase.NewRosterViewService(source, snapshots, usecase.RosterViewConfig{
		FreeAgentMaxLimit: cfg.FreeAgentMaxLimit,
	}, logger)

	handler := httpapi.NewHandler(service, client, logger)
	if invalidator != nil {
		handler = handler.WithWeekInvalidator(invalidator)
	}
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, closeAll, nil
}

func newCacheBackend(ctx context.Context, cfg config.Config) (cache.Backend, CloseFunc, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis cache: %w", err)
		}
		closeFn := func(context.Context) error { return client.Close() }
		return cache.NewRedisStore(client, redisKeyPrefix, cfg.CacheTTL), closeFn, nil
	default:
		return cache.NewStore(cfg.CacheTTL), nil, nil
	}
}

// newSnapshotRepository returns a nil repository for SNAPSHOT_STORE=none,
// which disables stale fallback.
func newSnapshotRepository(ctx context.Context, cfg config.Config) (player.SnapshotRepository, CloseFunc, error) {
	switch cfg.SnapshotStore {
	case config.SnapshotStoreNone:
		return nil, nil, nil
	case config.SnapshotStorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error { return db.Close() }
		return postgres.NewSnapshotRepository(db), closeFn, nil
	default:
		return memory.NewSnapshotRepository(), nil, nil
	}
}
