package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/delivery/http"
	"github.com/pappi-team/pappi-matching/internal/delivery/http/handler"
	"github.com/pappi-team/pappi-matching/internal/delivery/http/middleware"
	"github.com/pappi-team/pappi-matching/internal/infrastructure/database"
	"github.com/pappi-team/pappi-matching/internal/infrastructure/server"
	"github.com/pappi-team/pappi-matching/internal/repository"
	"github.com/pappi-team/pappi-matching/internal/repository/postgres"
	redisrepo "github.com/pappi-team/pappi-matching/internal/repository/redis"
	"github.com/pappi-team/pappi-matching/internal/usecase/interaction"
	"github.com/pappi-team/pappi-matching/internal/usecase/lostfound"
	"github.com/pappi-team/pappi-matching/internal/usecase/matching"
	"github.com/pappi-team/pappi-matching/internal/usecase/preference"
	"github.com/pappi-team/pappi-matching/internal/usecase/recommendation"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server

	Matching *matching.UseCase
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Redis is optional; the feed just loses its cache without it.
	var feedCache repository.FeedCache
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, feed caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		feedCache = redisrepo.NewFeedCache(redisClient, cfg.Matching.FeedCacheTTL)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	animalRepo := postgres.NewAnimalRepository(db)
	preferenceRepo := postgres.NewPreferenceRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	scoreRepo := postgres.NewMatchScoreRepository(db)
	recommendationRepo := postgres.NewRecommendationRepository(db)
	lostFoundRepo := postgres.NewLostFoundRepository(db)

	// Initialize use cases
	matchingUseCase := matching.NewUseCase(
		preferenceRepo,
		userRepo,
		animalRepo,
		interactionRepo,
		scoreRepo,
		cfg.Matching,
		logger,
	)

	recommendationUseCase := recommendation.NewUseCase(
		animalRepo,
		interactionRepo,
		recommendationRepo,
		matchingUseCase,
		feedCache,
		cfg.Matching,
		logger,
	)

	preferenceUseCase := preference.NewUseCase(preferenceRepo, feedCache)

	interactionUseCase := interaction.NewUseCase(
		interactionRepo,
		animalRepo,
		recommendationRepo,
		logger,
	)

	lostFoundUseCase := lostfound.NewUseCase(
		lostFoundRepo,
		cfg.Matching.LostFound,
		logger,
	)

	// Initialize handlers
	matchHandler := handler.NewMatchHandler(matchingUseCase)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUseCase)
	preferenceHandler := handler.NewPreferenceHandler(preferenceUseCase)
	interactionHandler := handler.NewInteractionHandler(interactionUseCase)
	lostFoundHandler := handler.NewLostFoundHandler(lostFoundUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.AccessSecret)

	// Initialize router
	router := http.NewRouter(
		matchHandler,
		recommendationHandler,
		preferenceHandler,
		interactionHandler,
		lostFoundHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    redisClient,
		Server:   srv,
		Matching: matchingUseCase,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
