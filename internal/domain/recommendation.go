package domain

import "time"

// RecommendationSource is the closed set of feed sources. The blender trusts
// them in this order when deduplicating: collaborative, content-based,
// matching.
type RecommendationSource string

const (
	SourceCollaborative RecommendationSource = "collaborative"
	SourceContentBased  RecommendationSource = "content_based"
	SourceMatching      RecommendationSource = "matching"
)

// RecommendationReason is the typed provenance of a feed entry.
type RecommendationReason struct {
	Source   RecommendationSource `json:"source"`
	Criteria []string             `json:"criteria,omitempty"`
}

// Recommendation is one entry of the blended feed.
type Recommendation struct {
	Animal *Animal              `json:"animal"`
	Score  float64              `json:"score"`
	Reason RecommendationReason `json:"reason"`
}

// RecommendationRecord is the append-only audit row of what was shown.
type RecommendationRecord struct {
	ID         int                  `json:"id" db:"id"`
	UserID     int                  `json:"user_id" db:"user_id"`
	AnimalID   int                  `json:"animal_id" db:"animal_id"`
	Score      float64              `json:"score" db:"score"`
	Source     RecommendationSource `json:"source" db:"source"`
	Criteria   []string             `json:"criteria" db:"criteria"`
	ShownAt    time.Time            `json:"shown_at" db:"shown_at"`
	Interacted bool                 `json:"interacted" db:"interacted"`
}
