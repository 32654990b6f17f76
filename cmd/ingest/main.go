package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ameyak/degrees/backend/internal/config"
	"github.com/ameyak/degrees/backend/internal/dataset"
	"github.com/ameyak/degrees/backend/internal/graph"
	"github.com/ameyak/degrees/backend/internal/logging"
	"github.com/ameyak/degrees/backend/internal/repository"
	"github.com/ameyak/degrees/backend/internal/service"
)

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "data", "Directory containing people.csv, movies.csv, and stars.csv")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for ingestion")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "ingest")

	ds, err := dataset.Load(*datasetDir)
	if err != nil {
		logger.Error("failed to load dataset", "error", err, "dir", *datasetDir)
		os.Exit(1)
	}
	if len(ds.People) == 0 {
		logger.Error("people dataset empty", "dir", *datasetDir)
		os.Exit(1)
	}
	if len(ds.Movies) == 0 {
		logger.Error("movies dataset empty", "dir", *datasetDir)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	ingestor := service.NewBulkIngestor(repo, *workers)

	start := time.Now()
	logger.Info("ingesting people", "count", len(ds.People), "workers", *workers)
	if err := ingestor.IngestPeople(ctx, ds.People); err != nil {
		logger.Error("people ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingesting movies", "count", len(ds.Movies), "stars", len(ds.Stars))
	if err := ingestor.IngestMovies(ctx, ds.Movies, ds.Stars); err != nil {
		logger.Error("movie ingestion failed", "error", err)
		os.Exit(1)
	}

	logger.Info("ingestion complete",
		"duration", time.Since(start).String(),
		"people", len(ds.People),
		"movies", len(ds.Movies),
		"stars", len(ds.Stars),
	)
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for ingestion")
	}
	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	client, err := graph.NewNeo4jClient(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.VerifyConnectivity(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
