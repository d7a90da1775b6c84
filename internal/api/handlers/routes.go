package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"vending-route-service/internal/api/dto"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/services"

	"go.uber.org/zap"
)

const maxStopsLimit = 25

type RouteHandler struct {
	Trips TripService
}

// Plan orders up to max_stops vending machines into a walking route from the
// caller's position and returns it with a navigation deep link.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if req.MaxStops < 0 || req.MaxStops > maxStopsLimit {
		writeError(w, r, http.StatusBadRequest, "max_stops must be between 0 and 25")
		return
	}

	plan, err := h.Trips.PlanTrip(r.Context(), services.TripRequest{
		Origin:   domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon},
		MaxStops: req.MaxStops,
		Maps:     req.Maps,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCoordinate):
		writeError(w, r, http.StatusBadRequest, "lat must be in [-90, 90] and lon in [-180, 180]")
		return
	case errors.Is(err, services.ErrUnknownMapsProvider):
		writeError(w, r, http.StatusBadRequest, "maps must be apple or google")
		return
	default:
		zap.L().Error("plan trip failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(plan))
}
