package services

import (
	"errors"
	"vending-route-service/internal/domain"
)

var ErrNoCandidates = errors.New("no candidate stops")

// Nearest returns the single stop closest to start.
// It is equivalent to PlanRoute(start, candidates, 1)[0] and reports
// ErrNoCandidates instead of a placeholder when candidates is empty.
func Nearest(start domain.Coordinates, candidates []domain.Stop) (domain.Stop, error) {
	route := PlanRoute(start, candidates, 1)
	if len(route) == 0 {
		return domain.Stop{}, ErrNoCandidates
	}
	return route[0], nil
}
