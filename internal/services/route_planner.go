package services

import (
	"vending-route-service/internal/domain"
	"vending-route-service/internal/geo"
)

// Plan a multi-stop route using a greedy nearest-neighbor algorithm.
//
// Starting at start, the closest unvisited candidate is chosen at each step
// until maxStops stops are selected or the candidates run out. Ties go to
// the candidate that appears first in candidates.
// It does not attempt global route optimization (e.g., TSP solvers); the
// result is a known approximation for a small, bounded number of stops.
//
// candidates is never modified. The returned slice is empty, never nil,
// when candidates is empty or maxStops <= 0.
func PlanRoute(start domain.Coordinates, candidates []domain.Stop, maxStops int) []domain.Stop {
	if len(candidates) == 0 || maxStops <= 0 {
		return []domain.Stop{}
	}

	n := min(maxStops, len(candidates))
	route := make([]domain.Stop, 0, n)
	visited := make([]bool, len(candidates))
	current := start

	for len(route) < n {
		best := nearestUnvisited(current, candidates, visited)
		if best < 0 {
			break
		}

		visited[best] = true
		route = append(route, candidates[best])
		current = candidates[best].Coordinates
	}

	return route
}

// nearestUnvisited returns the index of the closest unvisited candidate, or -1.
// A strict comparison keeps the earliest candidate on ties.
func nearestUnvisited(from domain.Coordinates, candidates []domain.Stop, visited []bool) int {
	best := -1
	var bestDistance float64

	for i, c := range candidates {
		if visited[i] {
			continue
		}

		d := geo.Distance(from, c.Coordinates)
		if best < 0 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	return best
}
