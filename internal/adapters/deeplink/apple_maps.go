package deeplink

import (
	"errors"
	"strings"
	"vending-route-service/internal/domain"
)

// AppleMapsFormatter builds maps:// URLs understood by Apple Maps.
//
// Multiple stops are chained in daddr with "+to:", which Apple Maps reads
// as an ordered list of destinations.
type AppleMapsFormatter struct{}

func (AppleMapsFormatter) Format(origin domain.Coordinates, stops []domain.Stop) (string, error) {
	if len(stops) == 0 {
		return "", errors.New("apple maps link: at least one stop is required")
	}

	destinations := make([]string, 0, len(stops))
	for _, s := range stops {
		destinations = append(destinations, appleDestination(s))
	}

	var b strings.Builder
	b.WriteString("maps://?saddr=")
	b.WriteString(origin.String())
	b.WriteString("&daddr=")
	b.WriteString(strings.Join(destinations, "+to:"))

	return b.String(), nil
}

// appleDestination renders a stop as "retailer,address,city", each part encoded.
// Stops without display fields fall back to their coordinates.
func appleDestination(s domain.Stop) string {
	parts := stopLabel(s.Retailer, s.Address, s.City)
	if len(parts) == 0 {
		return s.Coordinates.String()
	}

	for i, p := range parts {
		parts[i] = component(p)
	}
	return strings.Join(parts, ",")
}
