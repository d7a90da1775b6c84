package handlers

import (
	"net/http"
)

// Health returns a minimal liveness check endpoint reporting the service name.
func Health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "service": service})
	}
}
