package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/infrastructure/database"
	"github.com/pappi-team/pappi-matching/internal/infrastructure/logger"
	"github.com/pappi-team/pappi-matching/internal/repository/postgres"
	"github.com/pappi-team/pappi-matching/internal/usecase/matching"
	"go.uber.org/zap"
)

// Batch rescoring pass, meant to run from cron. Sweeps stale match scores
// and recomputes rankings for recently active users.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	matchingUseCase := matching.NewUseCase(
		postgres.NewPreferenceRepository(db),
		postgres.NewUserRepository(db),
		postgres.NewAnimalRepository(db),
		postgres.NewInteractionRepository(db),
		postgres.NewMatchScoreRepository(db),
		cfg.Matching,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	start := time.Now()
	if err := matchingUseCase.RefreshScores(ctx); err != nil {
		log.Fatal("rescoring failed", zap.Error(err))
	}
	log.Info("rescoring complete", zap.Duration("elapsed", time.Since(start)))
}
