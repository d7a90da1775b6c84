package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"vending-route-service/internal/api/dto"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/services"

	"go.uber.org/zap"
)

// StopHandler exposes read-only vending machine endpoints.
type StopHandler struct {
	Trips TripService
}

func (h *StopHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stops, err := h.Trips.ListStops(r.Context())
	if err != nil {
		zap.L().Error("list stops failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListStopsResponse{
		Stops: make([]dto.StopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, toStopResponse(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Nearest answers GET /stops/nearest?lat=..&lon=..[&maps=apple|google].
func (h *StopHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	lat, err := parseFloatParam(q.Get("lat"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat must be a number")
		return
	}
	lon, err := parseFloatParam(q.Get("lon"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lon must be a number")
		return
	}

	plan, err := h.Trips.FindNearest(r.Context(), domain.Coordinates{Lat: lat, Lon: lon}, q.Get("maps"))
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidCoordinate):
		writeError(w, r, http.StatusBadRequest, "lat must be in [-90, 90] and lon in [-180, 180]")
		return
	case errors.Is(err, services.ErrUnknownMapsProvider):
		writeError(w, r, http.StatusBadRequest, "maps must be apple or google")
		return
	case errors.Is(err, services.ErrNoCandidates):
		writeError(w, r, http.StatusNotFound, "no vending machines found")
		return
	default:
		zap.L().Error("find nearest failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	s := plan.Stops[0]
	writeJSON(w, r, http.StatusOK, dto.NearestResponse{
		Stop:       toStopResponse(s.Stop),
		DistanceKm: s.LegDistanceKm,
		DeepLink:   plan.DeepLink,
	})
}

func parseFloatParam(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, errors.New("missing value")
	}
	return strconv.ParseFloat(v, 64)
}
