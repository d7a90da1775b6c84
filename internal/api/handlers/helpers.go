package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"vending-route-service/internal/api/dto"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/services"

	"go.uber.org/zap"
)

// TripService is the subset of the trip planner the handlers depend on.
type TripService interface {
	ListStops(ctx context.Context) ([]domain.Stop, error)
	PlanTrip(ctx context.Context, req services.TripRequest) (*domain.RoutePlan, error)
	FindNearest(ctx context.Context, origin domain.Coordinates, maps string) (*domain.RoutePlan, error)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func toStopResponse(s domain.Stop) dto.StopResponse {
	return dto.StopResponse{
		ID:        s.ID,
		Retailer:  s.Retailer,
		MachineID: s.MachineID,
		Address:   s.Address,
		City:      s.City,
		Latitude:  s.Coordinates.Lat,
		Longitude: s.Coordinates.Lon,
	}
}

func toRouteResponse(p *domain.RoutePlan) dto.RouteResponse {
	res := dto.RouteResponse{
		RequestID:       p.RequestID,
		OriginLat:       p.Origin.Lat,
		OriginLon:       p.Origin.Lon,
		TotalDistanceKm: p.TotalDistanceKm,
		DeepLink:        p.DeepLink,
		PlannedAt:       p.PlannedAt,
		Stops:           make([]dto.RouteStopResponse, 0, len(p.Stops)),
	}
	for _, s := range p.Stops {
		res.Stops = append(res.Stops, dto.RouteStopResponse{
			Stop:                 toStopResponse(s.Stop),
			LegDistanceKm:        s.LegDistanceKm,
			CumulativeDistanceKm: s.CumulativeDistanceKm,
		})
	}
	return res
}
