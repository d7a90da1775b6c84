package api

import (
	"net/http"
	"vending-route-service/internal/api/handlers"

	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(trips handlers.TripService, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	stopHandler := &handlers.StopHandler{Trips: trips}
	routeHandler := &handlers.RouteHandler{Trips: trips}

	mux.HandleFunc("/health", handlers.Health("vending-route-service"))
	mux.HandleFunc("/stops", stopHandler.List)
	mux.HandleFunc("/stops/nearest", stopHandler.Nearest)
	mux.HandleFunc("/routes", routeHandler.Plan)

	return requestIDMiddleware(loggingMiddleware(log, mux))
}
