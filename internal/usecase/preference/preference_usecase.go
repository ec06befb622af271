package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type UseCase struct {
	preferenceRepo repository.PreferenceRepository
	feedCache      repository.FeedCache
}

func NewUseCase(preferenceRepo repository.PreferenceRepository, feedCache repository.FeedCache) *UseCase {
	return &UseCase{
		preferenceRepo: preferenceRepo,
		feedCache:      feedCache,
	}
}

// UpdatePreferencesRequest carries the user-facing settings form. Absent
// fields leave the stored value untouched.
type UpdatePreferencesRequest struct {
	Species            *[]string `json:"species" binding:"omitempty,max=20"`
	Breeds             *[]string `json:"breeds" binding:"omitempty,max=20"`
	AgeMin             *int      `json:"age_min" binding:"omitempty,min=0,max=50"`
	AgeMax             *int      `json:"age_max" binding:"omitempty,min=0,max=50"`
	Gender             *string   `json:"gender" binding:"omitempty,oneof=male female"`
	Sizes              *[]string `json:"sizes" binding:"omitempty,max=10"`
	Colors             *[]string `json:"colors" binding:"omitempty,max=20"`
	RequiresPedigree   *bool     `json:"requires_pedigree"`
	RequiresVaccinated *bool     `json:"requires_vaccinated"`
	RequiresPassport   *bool     `json:"requires_passport"`
	MaxDistanceKm      *int      `json:"max_distance_km" binding:"omitempty,min=1,max=1000"`
}

// GetPreferences returns the user's profile, creating the empty default on
// first access.
func (uc *UseCase) GetPreferences(ctx context.Context, userID int) (*domain.Preferences, error) {
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

// UpdatePreferences applies the settings form on top of the stored profile.
func (uc *UseCase) UpdatePreferences(ctx context.Context, userID int, req *UpdatePreferencesRequest) (*domain.Preferences, error) {
	prefs, err := uc.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Species != nil {
		prefs.Species = *req.Species
	}
	if req.Breeds != nil {
		prefs.Breeds = *req.Breeds
	}
	if req.AgeMin != nil {
		prefs.AgeMin = req.AgeMin
	}
	if req.AgeMax != nil {
		prefs.AgeMax = req.AgeMax
	}
	if req.Gender != nil {
		prefs.Gender = req.Gender
	}
	if req.Sizes != nil {
		prefs.Sizes = *req.Sizes
	}
	if req.Colors != nil {
		prefs.Colors = *req.Colors
	}
	if req.RequiresPedigree != nil {
		prefs.RequiresPedigree = *req.RequiresPedigree
	}
	if req.RequiresVaccinated != nil {
		prefs.RequiresVaccinated = *req.RequiresVaccinated
	}
	if req.RequiresPassport != nil {
		prefs.RequiresPassport = *req.RequiresPassport
	}
	if req.MaxDistanceKm != nil {
		prefs.MaxDistanceKm = *req.MaxDistanceKm
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	if err := uc.preferenceRepo.Update(ctx, prefs); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}

	// A cached feed reflects the old profile; drop it and let the next
	// request rebuild. Best effort, the update itself already succeeded.
	if uc.feedCache != nil {
		_ = uc.feedCache.InvalidateFeed(ctx, userID)
	}
	return prefs, nil
}
