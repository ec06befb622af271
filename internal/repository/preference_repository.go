package repository

import (
	"context"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Preferences, error)
	Create(ctx context.Context, prefs *domain.Preferences) error
	Update(ctx context.Context, prefs *domain.Preferences) error
}
