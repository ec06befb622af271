package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/geo"
	"github.com/pappi-team/pappi-matching/internal/repository"
	"go.uber.org/zap"
)

// UseCase is the matching engine: it builds the candidate pool, scores it
// against the user's preferences, boosts by proximity and interaction
// history, and persists the resulting ranking.
type UseCase struct {
	preferenceRepo  repository.PreferenceRepository
	userRepo        repository.UserRepository
	animalRepo      repository.AnimalRepository
	interactionRepo repository.InteractionRepository
	scoreRepo       repository.MatchScoreRepository
	cfg             config.MatchingConfig
	logger          *zap.Logger
}

func NewUseCase(
	preferenceRepo repository.PreferenceRepository,
	userRepo repository.UserRepository,
	animalRepo repository.AnimalRepository,
	interactionRepo repository.InteractionRepository,
	scoreRepo repository.MatchScoreRepository,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		preferenceRepo:  preferenceRepo,
		userRepo:        userRepo,
		animalRepo:      animalRepo,
		interactionRepo: interactionRepo,
		scoreRepo:       scoreRepo,
		cfg:             cfg,
		logger:          logger,
	}
}

// GetOrCreatePreferences returns the user's preference profile, creating the
// empty default on first access.
func (uc *UseCase) GetOrCreatePreferences(ctx context.Context, userID int) (*domain.Preferences, error) {
	prefs, err := uc.preferenceRepo.GetByUserID(ctx, userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, domain.ErrPreferencesNotFound) {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	prefs = domain.NewDefaultPreferences(userID)
	if err := uc.preferenceRepo.Create(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to create default preferences: %w", err)
	}
	return prefs, nil
}

// GetMatches returns the top candidates for a user, best first, and persists
// their scores. Ranking is returned even when persistence fails.
func (uc *UseCase) GetMatches(ctx context.Context, userID, limit int) ([]*domain.Match, error) {
	if limit <= 0 {
		limit = uc.cfg.DefaultMatchLimit
	}

	prefs, err := uc.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Only used for the location boost; matching works without it.
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		uc.logger.Warn("user lookup failed, skipping location boost",
			zap.Int("user_id", userID), zap.Error(err))
		user = &domain.User{ID: userID}
	}

	candidates, err := uc.animalRepo.SelectCandidates(ctx, userID, prefs, uc.cfg.CandidatePoolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}

	matches := make([]*domain.Match, 0, len(candidates))
	for _, animal := range candidates {
		if animal.Species == "" {
			uc.logger.Debug("skipping candidate without species",
				zap.Int("animal_id", animal.ID))
			continue
		}

		base, criteria := scoreAnimal(uc.cfg.Weights, prefs, animal)
		if base <= 0 {
			continue
		}

		final := uc.applyLocationBoost(base, user, animal, prefs.MaxDistanceKm)
		final = uc.applyInteractionBoost(ctx, final, userID, animal.Species)

		matches = append(matches, &domain.Match{
			Animal:   animal,
			Score:    final,
			Criteria: criteria,
		})
	}

	// Ties break by listing age, newest first.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Animal.CreatedAt.After(matches[j].Animal.CreatedAt)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	if err := uc.SaveMatches(ctx, userID, matches); err != nil {
		uc.logger.Warn("failed to persist match scores",
			zap.Int("user_id", userID), zap.Error(err))
	}

	return matches, nil
}

// applyLocationBoost multiplies the score by up to 1+LocationBoost when both
// sides have coordinates and the candidate is within the user's search
// radius. Candidates beyond the radius keep their unboosted score; they are
// not filtered here.
func (uc *UseCase) applyLocationBoost(score float64, user *domain.User, animal *domain.Animal, maxDistanceKm int) float64 {
	if !user.HasLocation() || !animal.HasLocation() {
		return score
	}
	if maxDistanceKm <= 0 {
		maxDistanceKm = uc.cfg.DefaultMaxDistanceKm
	}

	distance, err := geo.Distance(*user.LocationLat, *user.LocationLon,
		*animal.LocationLat, *animal.LocationLon)
	if err != nil {
		// Malformed coordinates cost the candidate its boost, nothing more.
		uc.logger.Debug("invalid coordinates, skipping location boost",
			zap.Int("animal_id", animal.ID), zap.Error(err))
		return score
	}

	maxDistance := float64(maxDistanceKm)
	if distance > maxDistance {
		return score
	}

	distanceFactor := 1 - distance/maxDistance
	return score * (1 + distanceFactor*uc.cfg.LocationBoost)
}

// applyInteractionBoost multiplies the score by up to 1+InteractionBoost
// based on the user's historical like ratio for the candidate's species.
func (uc *UseCase) applyInteractionBoost(ctx context.Context, score float64, userID int, species string) float64 {
	ratio, err := uc.interactionRepo.LikeRatio(ctx, userID, species)
	if err != nil {
		uc.logger.Warn("like ratio lookup failed, skipping interaction boost",
			zap.Int("user_id", userID), zap.String("species", species), zap.Error(err))
		return score
	}
	return score * (1 + ratio*uc.cfg.InteractionBoost)
}

// SaveMatches upserts one score row per match. A failed upsert is retried
// once; a repeated failure is reported but does not abort the remaining rows.
func (uc *UseCase) SaveMatches(ctx context.Context, userID int, matches []*domain.Match) error {
	var failed int
	for _, match := range matches {
		score := &domain.MatchScore{
			UserID:          userID,
			AnimalID:        match.Animal.ID,
			Score:           match.Score,
			MatchedCriteria: match.Criteria,
		}
		if err := uc.scoreRepo.Upsert(ctx, score); err != nil {
			if err = uc.scoreRepo.Upsert(ctx, score); err != nil {
				uc.logger.Warn("match score upsert failed after retry",
					zap.Int("user_id", userID),
					zap.Int("animal_id", match.Animal.ID),
					zap.Error(err))
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to persist %d of %d match scores", failed, len(matches))
	}
	return nil
}

// RefreshScores is the periodic batch pass: it sweeps scores older than the
// retention window and recomputes matches for users active within it. Safe
// to re-run; persistence is an upsert.
func (uc *UseCase) RefreshScores(ctx context.Context) error {
	cutoff := time.Now().Add(-uc.cfg.ScoreRetention)

	swept, err := uc.scoreRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to sweep stale scores: %w", err)
	}
	uc.logger.Info("swept stale match scores", zap.Int64("rows", swept))

	userIDs, err := uc.interactionRepo.ActiveUserIDs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to list active users: %w", err)
	}

	for _, userID := range userIDs {
		if _, err := uc.GetMatches(ctx, userID, uc.cfg.DefaultMatchLimit); err != nil {
			uc.logger.Warn("rescoring failed for user",
				zap.Int("user_id", userID), zap.Error(err))
		}
	}

	uc.logger.Info("rescored active users", zap.Int("users", len(userIDs)))
	return nil
}
