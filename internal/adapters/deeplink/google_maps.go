package deeplink

import (
	"errors"
	"net/url"
	"strings"
	"vending-route-service/internal/domain"
)

const googleMapsDirURL = "https://www.google.com/maps/dir/"

// GoogleMapsFormatter builds cross-platform Google Maps directions URLs.
// The last stop is the destination and the others become waypoints.
type GoogleMapsFormatter struct {
	// TravelMode defaults to "walking".
	TravelMode string
}

func (g GoogleMapsFormatter) Format(origin domain.Coordinates, stops []domain.Stop) (string, error) {
	if len(stops) == 0 {
		return "", errors.New("google maps link: at least one stop is required")
	}

	mode := g.TravelMode
	if mode == "" {
		mode = "walking"
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin.String())
	q.Set("destination", googlePlace(stops[len(stops)-1]))
	q.Set("travelmode", mode)

	if len(stops) > 1 {
		waypoints := make([]string, 0, len(stops)-1)
		for _, s := range stops[:len(stops)-1] {
			waypoints = append(waypoints, googlePlace(s))
		}
		q.Set("waypoints", strings.Join(waypoints, "|"))
	}

	return googleMapsDirURL + "?" + q.Encode(), nil
}

// googlePlace prefers the street address so the app lands on the storefront;
// coordinates are used when the stop has no address.
func googlePlace(s domain.Stop) string {
	parts := stopLabel(s.Retailer, s.Address, s.City)
	if s.Address == "" || len(parts) == 0 {
		return s.Coordinates.String()
	}
	return strings.Join(parts, ", ")
}
