package ports

import (
	"context"
	"vending-route-service/internal/domain"
)

// Contract for announcing planned routes to downstream consumers.
type RoutePublisher interface {
	PublishRoute(ctx context.Context, plan *domain.RoutePlan) error
}
