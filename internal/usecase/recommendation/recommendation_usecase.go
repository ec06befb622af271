package recommendation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
	"go.uber.org/zap"
)

// Fixed source scores for candidates that arrive without an engine score of
// their own.
const (
	collaborativeScore = 0.8
	contentBasedScore  = 0.7
)

// matchProvider is the slice of the matching engine the blender consumes.
type matchProvider interface {
	GetMatches(ctx context.Context, userID, limit int) ([]*domain.Match, error)
}

// UseCase blends three candidate sources into one deduplicated feed:
// collaborative, content-based and the matching engine, in decreasing order
// of trust. The first source to claim a candidate wins.
type UseCase struct {
	animalRepo      repository.AnimalRepository
	interactionRepo repository.InteractionRepository
	recRepo         repository.RecommendationRepository
	matcher         matchProvider
	cache           repository.FeedCache
	cfg             config.MatchingConfig
	logger          *zap.Logger
}

func NewUseCase(
	animalRepo repository.AnimalRepository,
	interactionRepo repository.InteractionRepository,
	recRepo repository.RecommendationRepository,
	matcher matchProvider,
	cache repository.FeedCache,
	cfg config.MatchingConfig,
	logger *zap.Logger,
) *UseCase {
	return &UseCase{
		animalRepo:      animalRepo,
		interactionRepo: interactionRepo,
		recRepo:         recRepo,
		matcher:         matcher,
		cache:           cache,
		cfg:             cfg,
		logger:          logger,
	}
}

// GetRecommendations returns the blended feed for a user, best first, and
// appends every impression to the recommendation history.
func (uc *UseCase) GetRecommendations(ctx context.Context, userID, limit int) ([]*domain.Recommendation, error) {
	if limit <= 0 {
		limit = uc.cfg.DefaultMatchLimit
	}

	if uc.cache != nil {
		if cached, ok, err := uc.cache.GetFeed(ctx, userID); err != nil {
			uc.logger.Warn("feed cache read failed", zap.Int("user_id", userID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	perSource := limit / 3
	if perSource < 1 {
		perSource = 1
	}

	recentlyShown := uc.recentlyShownSet(ctx, userID)

	recommendations := make([]*domain.Recommendation, 0, limit)
	seen := make(map[int]bool)

	add := func(rec *domain.Recommendation) {
		id := rec.Animal.ID
		if seen[id] || recentlyShown[id] {
			return
		}
		seen[id] = true
		recommendations = append(recommendations, rec)
	}

	for _, animal := range uc.collaborativeCandidates(ctx, userID, perSource) {
		add(&domain.Recommendation{
			Animal: animal,
			Score:  collaborativeScore,
			Reason: domain.RecommendationReason{Source: domain.SourceCollaborative},
		})
	}

	for _, animal := range uc.contentBasedCandidates(ctx, userID, perSource) {
		add(&domain.Recommendation{
			Animal: animal,
			Score:  contentBasedScore,
			Reason: domain.RecommendationReason{Source: domain.SourceContentBased},
		})
	}

	matches, err := uc.matcher.GetMatches(ctx, userID, perSource)
	if err != nil {
		uc.logger.Warn("matching source unavailable", zap.Int("user_id", userID), zap.Error(err))
	}
	for _, match := range matches {
		// Engine scores live on a 0..100-ish scale; normalize next to the
		// fixed source scores.
		add(&domain.Recommendation{
			Animal: match.Animal,
			Score:  match.Score / 100,
			Reason: domain.RecommendationReason{
				Source:   domain.SourceMatching,
				Criteria: match.Criteria,
			},
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	uc.saveHistory(ctx, userID, recommendations)

	if uc.cache != nil {
		if err := uc.cache.SetFeed(ctx, userID, recommendations); err != nil {
			uc.logger.Warn("feed cache write failed", zap.Int("user_id", userID), zap.Error(err))
		}
	}

	return recommendations, nil
}

func (uc *UseCase) recentlyShownSet(ctx context.Context, userID int) map[int]bool {
	since := time.Now().Add(-uc.cfg.RepeatWindow)
	ids, err := uc.recRepo.RecentlyShownAnimalIDs(ctx, userID, since)
	if err != nil {
		uc.logger.Warn("recently shown lookup failed", zap.Int("user_id", userID), zap.Error(err))
		return map[int]bool{}
	}

	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (uc *UseCase) collaborativeCandidates(ctx context.Context, userID, limit int) []*domain.Animal {
	animals, err := uc.animalRepo.LikedBySimilarUsers(ctx, userID, limit)
	if err != nil {
		uc.logger.Warn("collaborative source failed", zap.Int("user_id", userID), zap.Error(err))
		return nil
	}
	return animals
}

// contentBasedCandidates finds animals sharing species and breed with the
// user's five most recent likes.
func (uc *UseCase) contentBasedCandidates(ctx context.Context, userID, limit int) []*domain.Animal {
	likedIDs, err := uc.interactionRepo.RecentLikedAnimalIDs(ctx, userID, 5)
	if err != nil {
		uc.logger.Warn("recent likes lookup failed", zap.Int("user_id", userID), zap.Error(err))
		return nil
	}
	if len(likedIDs) == 0 {
		return nil
	}

	var species, breeds []string
	for _, id := range likedIDs {
		animal, err := uc.animalRepo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		species = appendUnique(species, animal.Species)
		breeds = appendUnique(breeds, animal.Breed)
	}

	animals, err := uc.animalRepo.FindSimilar(ctx, species, breeds, likedIDs, limit)
	if err != nil {
		uc.logger.Warn("content-based source failed", zap.Int("user_id", userID), zap.Error(err))
		return nil
	}
	return animals
}

// saveHistory appends every impression. A failed append is retried once and
// then only logged; the feed is still returned to the caller.
func (uc *UseCase) saveHistory(ctx context.Context, userID int, recommendations []*domain.Recommendation) {
	for _, rec := range recommendations {
		record := &domain.RecommendationRecord{
			UserID:   userID,
			AnimalID: rec.Animal.ID,
			Score:    rec.Score,
			Source:   rec.Reason.Source,
			Criteria: rec.Reason.Criteria,
		}
		if err := uc.recRepo.Create(ctx, record); err != nil {
			if err = uc.recRepo.Create(ctx, record); err != nil {
				uc.logger.Warn("failed to record recommendation",
					zap.Int("user_id", userID),
					zap.Int("animal_id", rec.Animal.ID),
					zap.Error(err))
			}
		}
	}
}

// MarkInteracted flags history rows for a pair once the user acts on a shown
// candidate.
func (uc *UseCase) MarkInteracted(ctx context.Context, userID, animalID int) error {
	if err := uc.recRepo.MarkInteracted(ctx, userID, animalID); err != nil {
		return fmt.Errorf("failed to mark recommendation interacted: %w", err)
	}
	return nil
}

func appendUnique(set []string, value string) []string {
	if value == "" {
		return set
	}
	for _, s := range set {
		if s == value {
			return set
		}
	}
	return append(set, value)
}
