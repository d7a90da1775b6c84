package deeplink

import (
	"net/url"
	"strings"
)

// component escapes s like JavaScript's encodeURIComponent: spaces become %20
// and reserved characters such as ',' '&' and '/' are percent-encoded.
func component(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// stopLabel joins the non-empty display fields of a stop.
func stopLabel(fields ...string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
