// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"
)

// HealthHandler answers the liveness probe; it succeeds whenever the
// process is up.
type HealthHandler struct {
	StartedAt time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{StartedAt: time.Now()}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "campaign analytics service is running",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.StartedAt).String(),
	})
}
