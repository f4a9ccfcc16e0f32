package handler

import (
	"encoding/json"
	"net/http"

	"habesha-bites/internal/service"
	"habesha-bites/pkg/logger"
)

// StatusHandler serves the read-only observability endpoints.
type StatusHandler struct {
	status service.StatusServiceInterface
	logger *logger.Logger
}

func NewStatusHandler(status service.StatusServiceInterface, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		status: status,
		logger: log.WithComponent("status_handler"),
	}
}

// Health handles GET /health.
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.status.Health()

	statusCode := http.StatusOK
	if report.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	h.writeJSONResponse(w, statusCode, report)
}

// Info handles GET /.
func (h *StatusHandler) Info(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.status.Info())
}

func (h *StatusHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}
