// Package geo is the single great-circle distance implementation shared by
// the matching engine and the lost-pet matcher.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate reports a coordinate that is non-numeric or outside
// the valid latitude/longitude ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

const earthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance in kilometers between
// two points given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) (float64, error) {
	for _, lat := range []float64{lat1, lat2} {
		if math.IsNaN(lat) || lat < -90 || lat > 90 {
			return 0, fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, lat)
		}
	}
	for _, lon := range []float64{lon1, lon2} {
		if math.IsNaN(lon) || lon < -180 || lon > 180 {
			return 0, fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, lon)
		}
	}

	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// ParseCoordinate coerces a coordinate stored as a decimal string.
func ParseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidCoordinate, s)
	}
	return v, nil
}

// DistanceStrings computes Distance over coordinates stored as decimal
// strings, as the lost/found report table keeps them.
func DistanceStrings(lat1, lon1, lat2, lon2 string) (float64, error) {
	values := make([]float64, 4)
	for i, s := range []string{lat1, lon1, lat2, lon2} {
		v, err := ParseCoordinate(s)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}
	return Distance(values[0], values[1], values[2], values[3])
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
