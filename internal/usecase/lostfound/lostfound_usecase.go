package lostfound

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/geo"
	"github.com/pappi-team/pappi-matching/internal/repository"
	"go.uber.org/zap"
)

// UseCase matches lost-pet reports against found-pet reports and vice versa.
// Same-type reports never match each other.
type UseCase struct {
	reportRepo repository.LostFoundRepository
	cfg        config.LostFoundConfig
	logger     *zap.Logger
}

func NewUseCase(reportRepo repository.LostFoundRepository, cfg config.LostFoundConfig, logger *zap.Logger) *UseCase {
	return &UseCase{
		reportRepo: reportRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// FindMatches returns probable counterparts for a report, best first. Only
// opposite-type reports of the same species within the recency window and
// search radius are considered, and anything scoring below the minimum is
// discarded outright.
func (uc *UseCase) FindMatches(ctx context.Context, reportID int) ([]*domain.LostFoundMatch, error) {
	report, err := uc.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	from := report.ReportedAt.Add(-uc.cfg.RecencyWindow)
	to := report.ReportedAt.Add(uc.cfg.RecencyWindow)

	candidates, err := uc.reportRepo.FindCandidates(ctx,
		report.Type.Opposite(), report.Species, from, to, report.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate reports: %w", err)
	}

	matches := make([]*domain.LostFoundMatch, 0, len(candidates))
	for _, candidate := range candidates {
		score, distance, ok := uc.scoreCandidate(report, candidate)
		if !ok || score < uc.cfg.MinScore {
			continue
		}
		matches = append(matches, &domain.LostFoundMatch{
			Report:     candidate,
			Score:      score,
			DistanceKm: distance,
		})
	}

	// Ties break by proximity.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches, nil
}

// scoreCandidate combines attribute similarity with proximity. Being within
// the search radius is a hard requirement; breed and color mismatches only
// reduce the score.
func (uc *UseCase) scoreCandidate(report, candidate *domain.LostFoundReport) (score, distance float64, ok bool) {
	distance, ok = uc.distanceBetween(report, candidate)
	if !ok || distance > uc.cfg.SearchRadiusKm {
		return 0, 0, false
	}

	if equalFold(report.Breed, candidate.Breed) {
		score += uc.cfg.BreedWeight
	}
	if equalFold(report.Color, candidate.Color) {
		score += uc.cfg.ColorWeight
	}
	score += featureOverlap(report.DistinctiveFeatures, candidate.DistinctiveFeatures) * uc.cfg.FeaturesWeight
	score += (1 - distance/uc.cfg.SearchRadiusKm) * uc.cfg.ProximityWeight

	return score, distance, true
}

func (uc *UseCase) distanceBetween(report, candidate *domain.LostFoundReport) (float64, bool) {
	if report.Latitude == nil || report.Longitude == nil ||
		candidate.Latitude == nil || candidate.Longitude == nil {
		return 0, false
	}

	distance, err := geo.DistanceStrings(
		*report.Latitude, *report.Longitude,
		*candidate.Latitude, *candidate.Longitude,
	)
	if err != nil {
		uc.logger.Debug("invalid report coordinates",
			zap.Int("report_id", report.ID),
			zap.Int("candidate_id", candidate.ID),
			zap.Error(err))
		return 0, false
	}
	return distance, true
}

func equalFold(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// featureOverlap is the token-set intersection ratio of two free-text
// feature descriptions, in [0, 1].
func featureOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.Trim(token, ".,;:!?()\"'")
		if token != "" {
			set[token] = true
		}
	}
	return set
}
