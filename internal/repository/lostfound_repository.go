package repository

import (
	"context"
	"time"

	"github.com/pappi-team/pappi-matching/internal/domain"
)

type LostFoundRepository interface {
	GetByID(ctx context.Context, id int) (*domain.LostFoundReport, error)

	// FindCandidates returns reports of the given type and species whose
	// report date falls inside [from, to], excluding the given report ID.
	FindCandidates(ctx context.Context, reportType domain.ReportType, species string, from, to time.Time, excludeID int) ([]*domain.LostFoundReport, error)
}
