package api

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health reports liveness; kept unauthenticated so an orchestrator's
// readiness probe doesn't need a token.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: "tournament-engine"})
}
