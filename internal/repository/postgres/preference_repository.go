package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

const preferenceColumns = `
	id, user_id, preferred_species, preferred_breeds,
	preferred_age_min, preferred_age_max, preferred_gender,
	size_preference, color_preference,
	requires_pedigree, requires_vaccinated, requires_passport,
	max_distance, created_at, updated_at
`

func (r *preferenceRepository) scanPreferences(row *sql.Row) (*domain.Preferences, error) {
	var p domain.Preferences
	err := row.Scan(
		&p.ID, &p.UserID, pq.Array(&p.Species), pq.Array(&p.Breeds),
		&p.AgeMin, &p.AgeMax, &p.Gender,
		pq.Array(&p.Sizes), pq.Array(&p.Colors),
		&p.RequiresPedigree, &p.RequiresVaccinated, &p.RequiresPassport,
		&p.MaxDistanceKm, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID int) (*domain.Preferences, error) {
	query := `SELECT ` + preferenceColumns + ` FROM user_preferences WHERE user_id = $1`
	return r.scanPreferences(r.db.QueryRowContext(ctx, query, userID))
}

func (r *preferenceRepository) Create(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		INSERT INTO user_preferences (
			user_id, preferred_species, preferred_breeds,
			preferred_age_min, preferred_age_max, preferred_gender,
			size_preference, color_preference,
			requires_pedigree, requires_vaccinated, requires_passport,
			max_distance
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		prefs.UserID, pq.Array(prefs.Species), pq.Array(prefs.Breeds),
		prefs.AgeMin, prefs.AgeMax, prefs.Gender,
		pq.Array(prefs.Sizes), pq.Array(prefs.Colors),
		prefs.RequiresPedigree, prefs.RequiresVaccinated, prefs.RequiresPassport,
		prefs.MaxDistanceKm,
	).Scan(&prefs.ID, &prefs.CreatedAt, &prefs.UpdatedAt)
}

func (r *preferenceRepository) Update(ctx context.Context, prefs *domain.Preferences) error {
	query := `
		UPDATE user_preferences
		SET preferred_species = $1, preferred_breeds = $2,
		    preferred_age_min = $3, preferred_age_max = $4, preferred_gender = $5,
		    size_preference = $6, color_preference = $7,
		    requires_pedigree = $8, requires_vaccinated = $9, requires_passport = $10,
		    max_distance = $11, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $12
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		pq.Array(prefs.Species), pq.Array(prefs.Breeds),
		prefs.AgeMin, prefs.AgeMax, prefs.Gender,
		pq.Array(prefs.Sizes), pq.Array(prefs.Colors),
		prefs.RequiresPedigree, prefs.RequiresVaccinated, prefs.RequiresPassport,
		prefs.MaxDistanceKm, prefs.UserID,
	).Scan(&prefs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrPreferencesNotFound
	}
	return err
}
