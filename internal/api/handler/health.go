package handler

import (
	"net/http"
	"sincromei/pkg/controller"
)

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports that the process is serving. It does not probe the registry.
func (h Handler) Health(w http.ResponseWriter, _ *http.Request) {
	controller.WriteJSON(w, http.StatusOK, HealthResponse{Status: "OK"})
}
