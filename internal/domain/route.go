package domain

import "time"

// Represents a single stop in a planned route.
// A RouteStop pairs a Stop with the length of the leg that reaches it
// and the running total from the route origin.
type RouteStop struct {
	Stop                 Stop
	LegDistanceKm        float64
	CumulativeDistanceKm float64
}

// Represents a planned walk from the user's position through one or more stops.
// A RoutePlan is the output of the route planner decorated with leg metrics
// and a navigation deep link. It is immutable planning data.
type RoutePlan struct {
	RequestID       string
	Origin          Coordinates
	Stops           []RouteStop
	TotalDistanceKm float64
	DeepLink        string
	PlannedAt       time.Time
}
