package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/catalog"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/config"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/graph"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/logging"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/metrics"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/provider"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/repository"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/server"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/service"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/session"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/telemetry"
)

var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Exporter:     cfg.Tracing.Exporter,
		Endpoint:     cfg.Tracing.Endpoint,
		Insecure:     cfg.Tracing.Insecure,
		SamplerRatio: cfg.Tracing.SamplerRatio,
		ServiceName:  cfg.Tracing.ServiceName,
		Version:      version,
	}, logger)
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}

	graphClient, err := buildGraphClient(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to create graph client", zap.Error(err))
	}
	var repo *repository.Repository
	if graphClient != nil {
		repo = repository.New(graphClient)
	}

	source, err := buildCatalogSource(cfg, repo, logger.Named("catalog"))
	if err != nil {
		logger.Fatal("failed to configure card catalog", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	cards := catalog.NewCache(source, logger.Named("catalog"),
		catalog.WithLoadTimeout(cfg.Catalog.Timeout),
		catalog.WithLoadHook(m.CatalogLoaded),
	)

	completer, err := provider.New(ctx, provider.Options{
		Kind:        cfg.Provider.Kind,
		APIKey:      cfg.Provider.APIKey,
		Model:       cfg.Provider.Model,
		Temperature: float32(cfg.Provider.Temperature),
	})
	switch {
	case errors.Is(err, provider.ErrNoProvider):
		logger.Info("no completion provider configured, serving heuristic replies only")
	case err != nil:
		logger.Warn("completion provider unavailable, serving heuristic replies only", zap.Error(err))
	default:
		logger.Info("completion provider ready", zap.String("provider", completer.Name()))
	}

	store, err := buildSessionStore(ctx, cfg.Session)
	if err != nil {
		logger.Fatal("failed to create session store", zap.Error(err))
	}

	chatOpts := []service.ChatOption{
		service.WithMetrics(m),
		service.WithProviderTimeout(cfg.Provider.Timeout),
	}
	if store != nil {
		chatOpts = append(chatOpts, service.WithSessions(store))
	}
	chatService := service.NewChatService(completer, cards, logger.Named("chat"), chatOpts...)
	catalogService := service.NewCatalogService(cards, m)

	health := server.Checks{{Name: "graph", Check: server.GraphHealthService{Client: graphClient}}}
	if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
		health = append(health, server.NamedProbe{Name: "sessions", Check: server.ProbeFunc(pinger.Ping)})
	}

	deps := server.RouterDependencies{
		Health:           health,
		API:              server.NewAPIHandlers(logger.Named("api"), chatService, catalogService),
		AllowedOrigins:   cfg.HTTP.AllowedOrigins(),
		AllowCredentials: true,
		ServiceName:      cfg.Tracing.ServiceName,
	}
	if cfg.HTTP.MetricsEnabled {
		deps.Metrics = registry
	}
	router := server.NewRouter(logger, deps)

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing session store failed", zap.Error(err))
		}
	}
	if graphClient != nil {
		if err := graphClient.Close(shutdownCtx); err != nil {
			logger.Warn("closing graph client failed", zap.Error(err))
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("flushing traces failed", zap.Error(err))
	}
}

// buildGraphClient returns nil when no graph URI is configured.
func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, nil
	}
	return graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
}

func buildCatalogSource(cfg config.Config, repo *repository.Repository, logger *zap.Logger) (catalog.Source, error) {
	opts := catalog.BuildOptions{
		Mode: cfg.Catalog.Source,
		File: cfg.Catalog.File,
		Remote: catalog.RemoteOptions{
			URL:       cfg.Catalog.APIURL,
			APIKey:    cfg.Catalog.APIKey,
			Host:      cfg.Catalog.APIHost,
			KeyHeader: cfg.Catalog.APIKeyHeader,
			Timeout:   cfg.Catalog.Timeout,
		},
	}
	if repo == nil {
		return catalog.Build(opts, nil, logger)
	}
	return catalog.Build(opts, repo, logger)
}

// buildSessionStore returns nil for the "none" backend.
func buildSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, error) {
	switch cfg.Backend {
	case "none":
		return nil, nil
	case "redis":
		store, err := session.NewRedisStore(ctx, session.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return session.NewMemoryStore(cfg.TTL, time.Minute), nil
	}
}
