package ports

import (
	"context"
	"vending-route-service/internal/domain"
)

// Port: a boundary for retrieving the vending machine data set.
type StopRepository interface {
	// Retrieve all stops available for routing.
	ListStops(ctx context.Context) ([]domain.Stop, error)
}
