package ports

import "vending-route-service/internal/domain"

// Contract for turning a planned route into a navigation app URL.
// The planner never builds URLs itself.
type DeepLinkFormatter interface {
	// Return a URL that opens directions from origin through stops in order.
	Format(origin domain.Coordinates, stops []domain.Stop) (string, error)
}
