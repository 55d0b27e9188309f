// Package main is the entry point for the feed ingestion runner.
// By default it performs a single sweep over the SPOT feed and exits;
// with -interval it keeps sweeping on a fixed schedule until signalled.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/expeditiontrail/backend/internal/config"
	"github.com/expeditiontrail/backend/internal/ingest"
	"github.com/expeditiontrail/backend/internal/repo"
)

func main() {
	interval := flag.Duration("interval", 0, "re-run the sweep on this interval (0 runs once and exits)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	if cfg.SpotFeedID == "" {
		slog.Error("configuration error", "error", "SPOT_FEED_ID must be set")
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	feed := ingest.NewSpotFeed(cfg.SpotFeedURL, cfg.SpotFeedID)

	var elevation ingest.ElevationLookup
	if cfg.ElevationAPIURL != "" {
		elevation = ingest.NewElevationClient(cfg.ElevationAPIURL)
	} else {
		logger.Info("ELEVATION_API_URL not set, storing points without elevation")
	}

	ingestor := ingest.NewIngestor(feed, repo.NewPointRepo(pool), elevation, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *interval <= 0 {
		if err := sweep(ctx, ingestor, logger); err != nil {
			os.Exit(1)
		}
		return
	}

	logger.Info("starting scheduled ingestion", "interval", interval.String())
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	// Run immediately, then on every tick. Runs are strictly sequential:
	// the next tick is not consumed until the current sweep finishes.
	sweep(ctx, ingestor, logger)
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down ingestion runner")
			return
		case <-ticker.C:
			sweep(ctx, ingestor, logger)
		}
	}
}

// sweep runs one ingestion pass and logs its outcome.
func sweep(ctx context.Context, ingestor *ingest.Ingestor, logger *slog.Logger) error {
	stats, err := ingestor.Run(ctx)
	if err != nil {
		logger.Error("ingestion sweep failed",
			"pages", stats.Pages, "inserted", stats.Inserted, "error", err)
		return err
	}
	logger.Info("ingestion sweep finished",
		"pages", stats.Pages,
		"inserted", stats.Inserted,
		"failed", stats.Failed,
		"stopped_on_duplicate", stats.Duplicate)
	return nil
}
