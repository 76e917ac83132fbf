// Package app wires the catalog service together: storage, events, HTTP and gRPC servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storecatalog/internal/config"
	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/transport/rest"
	"github.com/abgdnv/storecatalog/migrations"
	"github.com/abgdnv/storecatalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/storecatalog/pkg/config"
	"github.com/abgdnv/storecatalog/pkg/messaging"
	pkgnats "github.com/abgdnv/storecatalog/pkg/nats"
	"github.com/abgdnv/storecatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Dependencies struct {
	CatalogService service.CatalogService
	Logger         *slog.Logger
	// MetricsHandler is mounted at MetricsPath when not nil.
	MetricsHandler http.Handler
	MetricsPath    string
	AllowedOrigins []string
}

func SetupDependencies(catalog store.CatalogStore, publisher messaging.Publisher, logger *slog.Logger, opts ...service.Option) *Dependencies {
	return &Dependencies{
		CatalogService: service.NewService(catalog, publisher, logger, opts...),
		Logger:         logger,
	}
}

// SetupStore opens the configured backend. The returned close function releases it.
func SetupStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (store.CatalogStore, func(), error) {
	if cfg.Driver == pkgconfig.DriverMemory {
		logger.Warn("Using in-memory catalog store, data is lost on restart")
		return store.NewInMemoryStore(), func() {}, nil
	}

	if cfg.Migrate {
		if err := bootstrap.Migrate(migrations.FS, cfg.URL, logger); err != nil {
			return nil, nil, err
		}
	}
	dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	logger.Info("Successfully connected to the database!")
	return store.NewPgStore(dbPool), dbPool.Close, nil
}

// SetupPublisher connects to NATS JetStream and ensures the catalog stream exists.
// A disabled configuration yields a publisher that discards events.
func SetupPublisher(ctx context.Context, cfg pkgconfig.NATSConfig, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		logger.Info("NATS disabled, catalog events are not published")
		return messaging.NoopPublisher{}, func() {}, nil
	}

	nc, err := pkgnats.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pkgnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if _, err := pkgnats.EnsureStream(ctx, js, cfg.Stream, cfg.Subjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS JetStream", "stream", cfg.Stream)
	return pkgnats.NewNatsPublisher(js), func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", "error", err)
		}
	}, nil
}

// SetupHttpHandler builds the router with every catalog route.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger, deps.AllowedOrigins...)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	catalogHandler := rest.NewHandler(deps.CatalogService, deps.Logger)
	catalogHandler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Handle(deps.MetricsPath, deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	deps.AllowedOrigins = cfg.HTTPServer.CORS.AllowedOrigins
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, "catalog-http", mux)
}

// SetupGrpcServer creates the gRPC server exposing the health service.
func SetupGrpcServer(reflectionEnabled bool) (*grpc.Server, *health.Server) {
	return server.NewGRPCServer(reflectionEnabled)
}
