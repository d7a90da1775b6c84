// Package geo holds the great-circle math used by the route planner.
package geo

import (
	"math"
	"vending-route-service/internal/domain"
)

// Mean radius of the earth in kilometers.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in kilometers.
// NaN components propagate to the result; callers validate ranges beforehand.
func Distance(a, b domain.Coordinates) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathDistance returns the length of the walk origin -> points[0] -> ... -> points[n-1].
func PathDistance(origin domain.Coordinates, points []domain.Coordinates) float64 {
	total := 0.0
	current := origin
	for _, p := range points {
		total += Distance(current, p)
		current = p
	}
	return total
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
