package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pappi-team/pappi-matching/internal/domain"
	"github.com/pappi-team/pappi-matching/internal/repository"
)

type lostFoundRepository struct {
	db *sqlx.DB
}

func NewLostFoundRepository(db *sqlx.DB) repository.LostFoundRepository {
	return &lostFoundRepository{db: db}
}

const reportColumns = `
	id, owner_id, type, species, breed, color, distinctive_features,
	latitude, longitude, reported_at, created_at
`

func scanReport(scanner interface{ Scan(dest ...interface{}) error }) (*domain.LostFoundReport, error) {
	var rep domain.LostFoundReport
	err := scanner.Scan(
		&rep.ID, &rep.OwnerID, &rep.Type, &rep.Species, &rep.Breed, &rep.Color,
		&rep.DistinctiveFeatures, &rep.Latitude, &rep.Longitude,
		&rep.ReportedAt, &rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *lostFoundRepository) GetByID(ctx context.Context, id int) (*domain.LostFoundReport, error) {
	query := `SELECT ` + reportColumns + ` FROM lost_found_reports WHERE id = $1`
	rep, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return rep, nil
}

func (r *lostFoundRepository) FindCandidates(ctx context.Context, reportType domain.ReportType, species string, from, to time.Time, excludeID int) ([]*domain.LostFoundReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM lost_found_reports
		WHERE type = $1
		  AND species = $2
		  AND reported_at BETWEEN $3 AND $4
		  AND id <> $5
		ORDER BY reported_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, reportType, species, from, to, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.LostFoundReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
