package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/waitumusic/backend/internal/config"
	"github.com/waitumusic/backend/internal/db"
	"github.com/waitumusic/backend/internal/presskit"
	"github.com/waitumusic/backend/internal/repositories"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	artistRepo := repositories.NewArtistRepo(pool)
	developmentRepo := repositories.NewDevelopmentRepo(pool)
	scanner := presskit.NewScanner(cfg.PressFetchTimeoutMS, cfg.PressFetchMaxRetries, log)

	log.Info("worker started")

	refreshTicker := time.NewTicker(cfg.PressRefreshInterval)
	defer refreshTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Run one pass on startup so fresh deployments have reach data
	// before the first tick.
	runPressRefresh(ctx, artistRepo, developmentRepo, scanner, log)

	for {
		select {
		case <-refreshTicker.C:
			runPressRefresh(ctx, artistRepo, developmentRepo, scanner, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runPressRefresh(ctx context.Context, artistRepo *repositories.ArtistRepo, developmentRepo *repositories.DevelopmentRepo, scanner *presskit.Scanner, log *zap.Logger) {
	artists, err := artistRepo.ListManagedWithPressPage(ctx)
	if err != nil {
		log.Error("failed to list artists for press refresh", zap.Error(err))
		return
	}

	for _, artist := range artists {
		if artist.PressPageURL == nil {
			continue
		}

		kit, err := scanner.FetchAndParse(ctx, *artist.PressPageURL)
		if err != nil {
			log.Warn("failed to fetch press page",
				zap.String("artist_id", artist.ID.String()),
				zap.String("url", *artist.PressPageURL),
				zap.Error(err),
			)
			continue
		}

		if err := developmentRepo.UpdateSocialReach(ctx, artist.ID, kit.TotalReach); err != nil {
			log.Error("failed to update social reach",
				zap.String("artist_id", artist.ID.String()),
				zap.Error(err),
			)
			continue
		}

		log.Info("refreshed press kit",
			zap.String("artist_id", artist.ID.String()),
			zap.Int("total_reach", kit.TotalReach),
			zap.Int("social_links", len(kit.SocialLinks)),
		)

		time.Sleep(1 * time.Second) // rate limiting
	}
}
