package domain

import "time"

// MatchScore is the persisted result of scoring one (user, animal) pair.
// Unique per pair; a new computation overwrites the prior row.
type MatchScore struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id"`
	AnimalID        int       `json:"animal_id" db:"animal_id"`
	Score           float64   `json:"score" db:"score"`
	MatchedCriteria []string  `json:"matched_criteria" db:"matched_criteria"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// Match is one ranked entry of the matching engine's output.
type Match struct {
	Animal   *Animal  `json:"animal"`
	Score    float64  `json:"score"`
	Criteria []string `json:"criteria"`
}
