package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Immutable geographic coordinates in WGS84 degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate reports whether the coordinates lie inside the valid latitude and
// longitude ranges. NaN and infinite components are rejected.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, c.Lon)
	}
	return nil
}

// Return coordinates as "lat,lon" for deep links and log fields.
func (c Coordinates) String() string {
	return fmt.Sprintf("%g,%g", c.Lat, c.Lon)
}
