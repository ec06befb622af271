package domain

import "time"

// ReportType distinguishes a lost-pet report from a found-pet report.
// Matching is only ever cross-type.
type ReportType string

const (
	ReportLost  ReportType = "lost"
	ReportFound ReportType = "found"
)

func (t ReportType) Opposite() ReportType {
	if t == ReportLost {
		return ReportFound
	}
	return ReportLost
}

func ParseReportType(s string) (ReportType, error) {
	switch t := ReportType(s); t {
	case ReportLost, ReportFound:
		return t, nil
	default:
		return "", ErrInvalidReportType
	}
}

// LostFoundReport is one lost or found announcement. Coordinates are stored
// as decimal strings, matching the listing store's schema, and parsed on use.
type LostFoundReport struct {
	ID                  int        `json:"id" db:"id"`
	OwnerID             int        `json:"owner_id" db:"owner_id"`
	Type                ReportType `json:"type" db:"type"`
	Species             string     `json:"species" db:"species"`
	Breed               string     `json:"breed" db:"breed"`
	Color               string     `json:"color" db:"color"`
	DistinctiveFeatures string     `json:"distinctive_features" db:"distinctive_features"`
	Latitude            *string    `json:"latitude" db:"latitude"`
	Longitude           *string    `json:"longitude" db:"longitude"`
	ReportedAt          time.Time  `json:"reported_at" db:"reported_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
}

// LostFoundMatch is one ranked probable match for a report.
type LostFoundMatch struct {
	Report     *LostFoundReport `json:"report"`
	Score      float64          `json:"score"`
	DistanceKm float64          `json:"distance_km"`
}
