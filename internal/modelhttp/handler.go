package modelhttp

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler implements the plain net/http handlers; gin_adapter.go wraps
// these for the Gin router the same way the teacher separates handler.go
// from gin_adapter.go in internal/metrics.
type Handler struct {
	service *Service
	logger  Logger
}

func NewHandler(service *Service, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Status handles GET /status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Status(r.Context())
	if err != nil {
		h.handleSnapshotError(w, err)
		return
	}
	h.jsonOK(w, resp)
}

// Flowchart handles GET /flowchart.
func (h *Handler) Flowchart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.service.Flowchart(r.Context())
	if err != nil {
		h.handleSnapshotError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(chart))
}

func (h *Handler) handleSnapshotError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoSnapshot) {
		h.jsonError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.logger.Error("introspection request failed", "error", err)
	h.jsonError(w, http.StatusInternalServerError, "internal error")
}

func (h *Handler) jsonOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
