package ingest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Handler exposes the ingestion trigger over HTTP for the ingest daemon.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ingest/forecasts", h.triggerIngest).Methods(http.MethodPost)
}

func (h *Handler) triggerIngest(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("forecast ingestion failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "ingestion failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
