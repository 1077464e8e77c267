// Package geo resolves device coordinates to the nearest catalog city and
// computes display distances.
package geo

import (
	"errors"
	"math"

	"github.com/vidalocal/discovery/internal/models"
)

const earthRadiusKm = 6371

var (
	ErrInvalidCoordinate = errors.New("geo: invalid coordinate")
	ErrEmptyCatalog      = errors.New("geo: empty city catalog")
)

// ResolveNearest returns the catalog city closest to (lat, lng) by squared
// planar distance. This is an approximation good enough to pick a default
// city within one country; it is not geodesic and must not be used for
// sub-kilometer ranking. Ties keep the earlier catalog entry (strict <
// comparison, first city is the initial candidate). Non-finite coordinates
// and an empty catalog are explicit errors, not silent NaN propagation.
func ResolveNearest(lat, lng float64, cities []models.City) (models.City, error) {
	if !finite(lat) || !finite(lng) {
		return models.City{}, ErrInvalidCoordinate
	}
	if len(cities) == 0 {
		return models.City{}, ErrEmptyCatalog
	}

	nearest := cities[0]
	minDist := math.Inf(1)
	for _, c := range cities {
		dLat := c.Latitude - lat
		dLng := c.Longitude - lng
		d := dLat*dLat + dLng*dLng
		if d < minDist {
			minDist = d
			nearest = c
		}
	}
	return nearest, nil
}

// Haversine returns the great-circle distance in kilometers between two
// points. Display-only; the nearest-city decision uses the planar
// approximation above.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLng := (lng2 - lng1) * (math.Pi / 180)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*(math.Pi/180))*math.Cos(lat2*(math.Pi/180))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
