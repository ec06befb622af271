package domain

import "errors"

var (
	ErrPreferencesNotFound    = errors.New("preferences not found")
	ErrAnimalNotFound         = errors.New("animal not found")
	ErrReportNotFound         = errors.New("report not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrInvalidAgeRange        = errors.New("minimum age exceeds maximum age")
	ErrInvalidMaxDistance     = errors.New("max distance must be positive")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
	ErrInvalidReportType      = errors.New("invalid report type")
	ErrInvalidToken           = errors.New("invalid token")
)
