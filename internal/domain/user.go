package domain

import "time"

// User carries the slice of the account record the engine needs: identity and
// last-known location. Accounts themselves live in the auth service.
type User struct {
	ID          int       `json:"id" db:"id"`
	LocationLat *float64  `json:"location_lat" db:"location_lat"`
	LocationLon *float64  `json:"location_lon" db:"location_lon"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (u *User) HasLocation() bool {
	return u.LocationLat != nil && u.LocationLon != nil
}
