package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Ankit6149/credit-card-recommendation-system/internal/catalog"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/config"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/domain"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/graph"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/logging"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/repository"
	"github.com/Ankit6149/credit-card-recommendation-system/internal/service"
)

var errMissingCatalog = errors.New("catalog file not found")

func main() {
	var (
		catalogPath = flag.String("catalog", "", "Path to a JSON or YAML card catalog (defaults to CARDS_FILE)")
		workers     = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	base, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	logger := base.With(zap.String("component", "ingest"))
	defer func() { _ = logger.Sync() }()

	path := *catalogPath
	if path == "" {
		path = cfg.Catalog.File
	}
	if _, err := os.Stat(path); err != nil {
		logger.Fatal("catalog resolution failed", zap.Error(fmt.Errorf("%w: %s", errMissingCatalog, path)))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cards, err := catalog.NewFileSource(path).Load(ctx)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err), zap.String("path", path))
	}
	if len(cards) == 0 {
		logger.Fatal("catalog empty", zap.String("path", path))
	}

	if err := ingest(ctx, logger, cfg, cards, *workers); err != nil {
		logger.Error("card ingestion failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func ingest(ctx context.Context, logger *zap.Logger, cfg config.Config, cards []domain.Card, workers int) error {
	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		return fmt.Errorf("create graph client: %w", err)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", zap.Error(err))
		}
	}()

	repo := repository.New(graphClient)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	start := time.Now()
	logger.Info("ingesting cards", zap.Int("count", len(cards)), zap.Int("workers", workers))
	if err := service.NewCardIngestor(repo, workers).IngestCards(ctx, cards); err != nil {
		return err
	}

	total, err := repo.CountCards(ctx)
	if err != nil {
		logger.Warn("counting stored cards failed", zap.Error(err))
	}
	logger.Info("ingestion complete",
		zap.Duration("duration", time.Since(start)),
		zap.Int("cards", len(cards)),
		zap.Int("stored", total),
	)
	return nil
}

func buildGraphClient(ctx context.Context, logger *zap.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for ingestion")
	}
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", zap.String("uri", cfg.Graph.URI), zap.String("database", cfg.Graph.Database))
	return client, nil
}
