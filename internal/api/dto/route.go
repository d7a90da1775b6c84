package dto

import "time"

type RouteRequest struct {
	Lat      *float64 `json:"lat"`
	Lon      *float64 `json:"lon"`
	MaxStops int      `json:"max_stops"`
	Maps     string   `json:"maps"`
}

type RouteStopResponse struct {
	Stop                 StopResponse `json:"stop"`
	LegDistanceKm        float64      `json:"leg_distance_km"`
	CumulativeDistanceKm float64      `json:"cumulative_distance_km"`
}

type RouteResponse struct {
	RequestID       string              `json:"request_id,omitempty"`
	OriginLat       float64             `json:"origin_lat"`
	OriginLon       float64             `json:"origin_lon"`
	TotalDistanceKm float64             `json:"total_distance_km"`
	DeepLink        string              `json:"deep_link,omitempty"`
	PlannedAt       time.Time           `json:"planned_at"`
	Stops           []RouteStopResponse `json:"stops"`
}

type NearestResponse struct {
	Stop       StopResponse `json:"stop"`
	DistanceKm float64      `json:"distance_km"`
	DeepLink   string       `json:"deep_link"`
}
