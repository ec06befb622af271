package domain

import "time"

type AnimalStatus string

const (
	AnimalStatusActive     AnimalStatus = "active"
	AnimalStatusClosed     AnimalStatus = "closed"
	AnimalStatusModeration AnimalStatus = "moderation"
)

// Animal is a listing's matchable attributes. The listing lifecycle owns the
// record; the matching engine only reads it.
type Animal struct {
	ID                  int          `json:"id" db:"id"`
	OwnerID             int          `json:"owner_id" db:"owner_id"`
	Species             string       `json:"species" db:"species"`
	Breed               string       `json:"breed" db:"breed"`
	Age                 *int         `json:"age" db:"age"`
	Gender              string       `json:"gender" db:"gender"`
	Size                string       `json:"size" db:"size"`
	Color               string       `json:"color" db:"color"`
	Pedigree            bool         `json:"pedigree" db:"pedigree"`
	Vaccinated          bool         `json:"vaccinated" db:"vaccinated"`
	Passport            bool         `json:"passport" db:"passport"`
	LocationLat         *float64     `json:"location_lat" db:"location_lat"`
	LocationLon         *float64     `json:"location_lon" db:"location_lon"`
	Status              AnimalStatus `json:"status" db:"status"`
	DistinctiveFeatures string       `json:"distinctive_features" db:"distinctive_features"`
	CreatedAt           time.Time    `json:"created_at" db:"created_at"`
}

func (a *Animal) HasLocation() bool {
	return a.LocationLat != nil && a.LocationLon != nil
}
