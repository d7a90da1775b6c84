// Package deeplink formats planned routes as navigation app URLs.
package deeplink

import (
	"fmt"
	"sort"
	"strings"
	"vending-route-service/internal/ports"
)

const (
	Apple  = "apple"
	Google = "google"
)

// Formatters returns every supported formatter keyed by provider name.
func Formatters() map[string]ports.DeepLinkFormatter {
	return map[string]ports.DeepLinkFormatter{
		Apple:  AppleMapsFormatter{},
		Google: GoogleMapsFormatter{},
	}
}

// Lookup resolves a provider name case-insensitively.
func Lookup(name string) (ports.DeepLinkFormatter, error) {
	formatters := Formatters()
	if f, ok := formatters[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}

	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)

	return nil, fmt.Errorf("unknown maps provider %q (want one of %s)", name, strings.Join(names, ", "))
}
