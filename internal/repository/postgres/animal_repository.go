package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type animalRepository struct {
	db *sqlx.DB
}

func NewAnimalRepository(db *sqlx.DB) repository.AnimalRepository {
	return &animalRepository{db: db}
}

const animalColumns = `
	a.id, a.owner_id, a.species, a.breed, a.age, a.gender, a.size, a.color,
	a.pedigree, a.vaccinated, a.passport, a.location_lat, a.location_lon,
	a.status, a.distinctive_features, a.created_at
`

func scanAnimal(scanner interface{ Scan(dest ...interface{}) error }) (*domain.Animal, error) {
	var a domain.Animal
	err := scanner.Scan(
		&a.ID, &a.OwnerID, &a.Species, &a.Breed, &a.Age, &a.Gender, &a.Size, &a.Color,
		&a.Pedigree, &a.Vaccinated, &a.Passport, &a.LocationLat, &a.LocationLon,
		&a.Status, &a.DistinctiveFeatures, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAnimals(rows *sql.Rows) ([]*domain.Animal, error) {
	defer rows.Close()

	var animals []*domain.Animal
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}
	return animals, rows.Err()
}

func (r *animalRepository) GetByID(ctx context.Context, id int) (*domain.Animal, error) {
	query := `SELECT ` + animalColumns + ` FROM animals a WHERE a.id = $1`
	a, err := scanAnimal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnimalNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *animalRepository) SelectCandidates(ctx context.Context, userID int, prefs *domain.Preferences, limit int) ([]*domain.Animal, error) {
	query := `
		SELECT ` + animalColumns + `
		FROM animals a
		WHERE a.status = 'active'
		  AND a.owner_id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM matching_scores ms
			WHERE ms.user_id = $1 AND ms.animal_id = a.id
		  )`
	args := []interface{}{userID}
	argCount := 2

	if len(prefs.Species) > 0 {
		query += fmt.Sprintf(" AND a.species = ANY($%d)", argCount)
		args = append(args, pq.Array(prefs.Species))
		argCount++
	}
	if len(prefs.Breeds) > 0 {
		query += fmt.Sprintf(" AND a.breed = ANY($%d)", argCount)
		args = append(args, pq.Array(prefs.Breeds))
		argCount++
	}

	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAnimals(rows)
}

func (r *animalRepository) LikedBySimilarUsers(ctx context.Context, userID int, limit int) ([]*domain.Animal, error) {
	query := `
		SELECT DISTINCT ` + animalColumns + `
		FROM animals a
		JOIN user_interactions ui
		  ON ui.animal_id = a.id AND ui.interaction_type = 'like'
		WHERE a.status = 'active'
		  AND ui.user_id IN (
			SELECT DISTINCT other.user_id
			FROM user_interactions other
			WHERE other.interaction_type = 'like'
			  AND other.user_id <> $1
			  AND other.animal_id IN (
				SELECT animal_id FROM user_interactions
				WHERE user_id = $1 AND interaction_type = 'like'
			  )
		  )
		  AND a.id NOT IN (
			SELECT animal_id FROM user_interactions WHERE user_id = $1
		  )
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectAnimals(rows)
}

func (r *animalRepository) FindSimilar(ctx context.Context, species, breeds []string, excludeIDs []int, limit int) ([]*domain.Animal, error) {
	if len(species) == 0 || len(breeds) == 0 {
		return nil, nil
	}
	if excludeIDs == nil {
		excludeIDs = []int{}
	}

	query := `
		SELECT ` + animalColumns + `
		FROM animals a
		WHERE a.status = 'active'
		  AND a.species = ANY($1)
		  AND a.breed = ANY($2)
		  AND NOT (a.id = ANY($3))
		ORDER BY a.created_at DESC
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query,
		pq.Array(species), pq.Array(breeds), pq.Array(excludeIDs), limit)
	if err != nil {
		return nil, err
	}
	return collectAnimals(rows)
}
