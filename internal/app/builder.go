package app

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/enrolsync/arlo-catalog-sync/internal/api"
	v1 "github.com/enrolsync/arlo-catalog-sync/internal/api/v1"
	"github.com/enrolsync/arlo-catalog-sync/internal/app/storage"
	"github.com/enrolsync/arlo-catalog-sync/internal/auth"
	"github.com/enrolsync/arlo-catalog-sync/internal/authz"
	"github.com/enrolsync/arlo-catalog-sync/internal/config"
	"github.com/enrolsync/arlo-catalog-sync/internal/httpclient"
	"github.com/enrolsync/arlo-catalog-sync/internal/logger"
	"github.com/enrolsync/arlo-catalog-sync/internal/sources"
	pkgsync "github.com/enrolsync/arlo-catalog-sync/internal/sync"
	"github.com/enrolsync/arlo-catalog-sync/internal/sync/coordinator"
	"github.com/enrolsync/arlo-catalog-sync/internal/telemetry"
	"github.com/enrolsync/arlo-catalog-sync/internal/trace"
)

const (
	defaultRequestTimeout = 5 * time.Minute
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 5 * time.Minute
	defaultIdleTimeout    = 60 * time.Second

	syncTracerName = "github.com/enrolsync/arlo-catalog-sync/sync"
)

// SyncAppOptions is a function that configures the sync app builder
type SyncAppOptions func(*syncAppConfig) error

// syncAppConfig collects the builder inputs. Every component can be injected,
// the rest are built from the configuration.
type syncAppConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	storageFactory storage.Factory
	fetcherFactory sources.FetcherFactory
	httpClient     httpclient.Client
	syncManager    pkgsync.Manager
	coordinator    coordinator.Coordinator
	progress       trace.Progress
	clock          func() time.Time

	validatorFactory auth.ValidatorFactory

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration

	telemetry *telemetry.Telemetry
}

func baseConfig(opts ...SyncAppOptions) (*syncAppConfig, error) {
	cfg := &syncAppConfig{
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
		clock:          time.Now,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.address == "" {
		cfg.address = cfg.config.GetAPIAddress()
	}

	return cfg, nil
}

// WithConfig sets the configuration
func WithConfig(c *config.Config) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.config = c
		return nil
	}
}

// WithAddress sets the HTTP server address, overriding the configured one
func WithAddress(addr string) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		if addr == "" {
			return fmt.Errorf("address cannot be empty")
		}

		host, port, found := strings.Cut(addr, ":")
		if !found || port == "" {
			return fmt.Errorf("address is not a valid port: %s", addr)
		}
		if host == "localhost" {
			host = "127.0.0.1"
		}
		if host == "" {
			host = "0.0.0.0"
		}

		if _, err := netip.ParseAddrPort(host + ":" + port); err != nil {
			return fmt.Errorf("address is not a valid port: %w", err)
		}

		cfg.address = addr
		return nil
	}
}

// WithMiddlewares sets custom HTTP middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.middlewares = mw
		return nil
	}
}

// WithAuthValidatorFactory overrides how token mode builds its validator
func WithAuthValidatorFactory(f auth.ValidatorFactory) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.validatorFactory = f
		return nil
	}
}

// WithStorageFactory allows injecting a custom storage factory (for testing)
func WithStorageFactory(f storage.Factory) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.storageFactory = f
		return nil
	}
}

// WithFetcherFactory allows injecting a custom fetcher factory (for testing)
func WithFetcherFactory(f sources.FetcherFactory) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.fetcherFactory = f
		return nil
	}
}

// WithHTTPClient sets the client the default fetcher factory uses
func WithHTTPClient(c httpclient.Client) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.httpClient = c
		return nil
	}
}

// WithSyncManager allows injecting a custom sync manager (for testing)
func WithSyncManager(m pkgsync.Manager) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.syncManager = m
		return nil
	}
}

// WithCoordinator allows injecting a custom coordinator (for testing)
func WithCoordinator(c coordinator.Coordinator) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.coordinator = c
		return nil
	}
}

// WithProgress sends sync trace lines to p instead of the logger
func WithProgress(p trace.Progress) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.progress = p
		return nil
	}
}

// WithClock overrides the clock used by the gate and the stores
func WithClock(now func() time.Time) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		if now == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		cfg.clock = now
		return nil
	}
}

// WithTelemetry enables metrics and tracing from t
func WithTelemetry(t *telemetry.Telemetry) SyncAppOptions {
	return func(cfg *syncAppConfig) error {
		cfg.telemetry = t
		return nil
	}
}

// BuildComponents builds the sync components without the HTTP server.
// The caller must Close the returned components.
func BuildComponents(ctx context.Context, opts ...SyncAppOptions) (*Components, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}
	return buildSyncComponents(ctx, cfg)
}

// buildSyncComponents builds the stores, the sync manager and the driver
func buildSyncComponents(ctx context.Context, b *syncAppConfig) (*Components, error) {
	logger.Info("Initializing sync components")

	if b.storageFactory == nil {
		var err error
		b.storageFactory, err = storage.NewStorageFactory(ctx, b.config)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage factory: %w", err)
		}
	}

	components := &Components{StorageFactory: b.storageFactory}
	cleanupNeeded := true
	defer func() {
		if cleanupNeeded {
			components.Close()
		}
	}()

	var err error
	if components.StateService, err = b.storageFactory.CreateStateService(ctx); err != nil {
		return nil, fmt.Errorf("failed to create state service: %w", err)
	}
	if components.RecordStore, err = b.storageFactory.CreateRecordStore(ctx); err != nil {
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}
	if components.APIStatus, err = b.storageFactory.CreateAPIStatus(ctx); err != nil {
		return nil, fmt.Errorf("failed to create API status: %w", err)
	}

	if b.fetcherFactory == nil {
		client := b.httpClient
		if client == nil {
			client = httpclient.NewDefaultClient(b.config.Sync.GetRequestTimeout())
		}
		b.fetcherFactory = sources.NewFetcherFactory(
			client,
			components.APIStatus,
			b.config.Sync.GetPullInterval(),
			b.clock,
		)
	}

	var driverOpts []coordinator.DriverOption
	if b.syncManager == nil {
		managerOpts := []pkgsync.Option{pkgsync.WithClock(b.clock)}
		if b.progress != nil {
			managerOpts = append(managerOpts, pkgsync.WithProgress(b.progress))
		}

		if b.telemetry != nil {
			managerOpts = append(managerOpts, pkgsync.WithTracer(b.telemetry.Tracer(syncTracerName)))

			syncMetrics, err := telemetry.NewSyncMetrics(b.telemetry.MeterProvider())
			if err != nil {
				return nil, fmt.Errorf("failed to create sync metrics: %w", err)
			}
			managerOpts = append(managerOpts, pkgsync.WithMetrics(syncMetrics))

			catalogMetrics, err := telemetry.NewCatalogMetrics(b.telemetry.MeterProvider())
			if err != nil {
				return nil, fmt.Errorf("failed to create catalog metrics: %w", err)
			}
			driverOpts = append(driverOpts, coordinator.WithCatalogMetrics(catalogMetrics, components.RecordStore))
		}

		b.syncManager = pkgsync.NewManager(components.StateService, components.RecordStore, managerOpts...)
	}

	if p, ok := b.storageFactory.(storage.RunLockProvider); ok {
		driverOpts = append(driverOpts, coordinator.WithRunLock(p.RunLock()))
	}

	components.Driver = coordinator.NewDriver(
		b.config,
		components.StateService,
		b.fetcherFactory,
		b.syncManager,
		driverOpts...,
	)

	cleanupNeeded = false
	logger.Info("Sync components initialized successfully")
	return components, nil
}

// buildHTTPServer builds the admin HTTP server with router and middleware
func buildHTTPServer(b *syncAppConfig, components *Components) (*http.Server, error) {
	logger.Info("Initializing HTTP server")

	if b.middlewares == nil {
		b.middlewares = []func(http.Handler) http.Handler{
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(b.requestTimeout),
			api.LoggingMiddleware,
		}
	}

	if b.telemetry != nil {
		httpMetrics, err := telemetry.NewHTTPMetrics(b.telemetry.MeterProvider())
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
		}
		// Metrics and tracing go first to capture every request
		b.middlewares = append([]func(http.Handler) http.Handler{
			httpMetrics.Middleware,
			telemetry.TracingMiddleware(b.telemetry.TracerProvider()),
		}, b.middlewares...)
	}

	authMiddleware, err := auth.NewAuthMiddleware(b.config.API.Auth, b.validatorFactory)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth middleware: %w", err)
	}
	b.middlewares = append(b.middlewares, authMiddleware)
	if b.config.API.Auth.GetMode() == config.AuthModeToken {
		b.middlewares = append(b.middlewares, authz.Middleware(authz.NewActionAuthorizer(), b.config.API.Auth.GetScopeMapping()))
	}

	serverOpts := []api.ServerOption{api.WithMiddlewares(b.middlewares...)}
	if b.telemetry != nil && b.telemetry.MetricsHandler() != nil {
		serverOpts = append(serverOpts, api.WithMetricsHandler(b.telemetry.MetricsHandler()))
	}

	router := api.NewServer(v1.Dependencies{
		Driver:    components.Driver,
		State:     components.StateService,
		APIStatus: components.APIStatus,
	}, serverOpts...)

	server := &http.Server{
		Addr:         b.address,
		Handler:      router,
		ReadTimeout:  b.readTimeout,
		WriteTimeout: b.writeTimeout,
		IdleTimeout:  b.idleTimeout,
	}

	logger.Infow("HTTP server configured", "address", b.address)
	return server, nil
}

// NewSyncApp builds the sync components, the cron coordinator and the admin server
func NewSyncApp(ctx context.Context, opts ...SyncAppOptions) (*SyncApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	components, err := buildSyncComponents(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build sync components: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		if cleanupNeeded {
			components.Close()
		}
	}()

	if cfg.coordinator == nil {
		cfg.coordinator, err = coordinator.New(components.Driver, cfg.config.Sync.GetSchedule())
		if err != nil {
			return nil, fmt.Errorf("failed to create coordinator: %w", err)
		}
	}

	httpServer, err := buildHTTPServer(cfg, components)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP server: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	cleanupNeeded = false

	return &SyncApp{
		config:      cfg.config,
		components:  components,
		coordinator: cfg.coordinator,
		httpServer:  httpServer,
		telemetry:   cfg.telemetry,
		ctx:         appCtx,
		cancelFunc:  cancel,
	}, nil
}
