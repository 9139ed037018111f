package handlers

import (
	"net/http"
)

// HealthResponse is the body of the healthcheck endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "OK"})
}
