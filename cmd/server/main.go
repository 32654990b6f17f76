package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ameyak/degrees/backend/internal/config"
	"github.com/ameyak/degrees/backend/internal/dataset"
	"github.com/ameyak/degrees/backend/internal/graph"
	"github.com/ameyak/degrees/backend/internal/logging"
	"github.com/ameyak/degrees/backend/internal/repository"
	"github.com/ameyak/degrees/backend/internal/server"
	"github.com/ameyak/degrees/backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	store, health, cleanup, err := buildStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to build store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	svc := service.NewSeparationService(store)
	apiHandlers := server.NewAPIHandlers(logger, svc)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           health,
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildStore selects the graph backend: Neo4j when GRAPH_URI is set,
// otherwise the in-memory store built from the CSV dataset directory.
func buildStore(ctx context.Context, logger *slog.Logger, cfg config.Config) (service.Store, server.HealthService, func(), error) {
	if cfg.Graph.URI != "" {
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, nil, func() {}, err
		}
		logger.Info("using neo4j store", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
		cleanup := func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
		return repository.New(client), server.GraphHealthService{Client: client}, cleanup, nil
	}

	ds, err := dataset.Load(cfg.Dataset.Dir)
	if err != nil {
		return nil, nil, func() {}, err
	}
	store := graph.NewStore(ds)
	logger.Info("using in-memory store",
		"dir", cfg.Dataset.Dir,
		"people", store.PersonCount(),
		"movies", store.MovieCount(),
		"skipped_stars", store.SkippedStars(),
	)
	return store, server.GraphHealthService{}, func() {}, nil
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
