package siteinfo_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"live-reservation/internal/logger"
	"live-reservation/internal/siteinfo"
)

// allowedKeys are the appearance assets the admin style page manages.
var allowedKeys = map[string]bool{
	"bg_image":  true,
	"top_image": true,
}

type Handler struct {
	SiteInfo *siteinfo.Service
	Logger   *logger.Logger
}

func NewHandler(service *siteinfo.Service, log *logger.Logger) *Handler {
	return &Handler{SiteInfo: service, Logger: log}
}

// Set stores a base64 image under a style key.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !allowedKeys[key] {
		respondNotice(w, http.StatusBadRequest, "Unknown style key: "+key)
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := h.SiteInfo.Set(r.Context(), key, req.Value); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Set style %s: %v", key, err))
		respondNotice(w, http.StatusInternalServerError, "Could not store style value")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"key": key})
}

// Reset removes a style key, falling back to the default appearance.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !allowedKeys[key] {
		respondNotice(w, http.StatusBadRequest, "Unknown style key: "+key)
		return
	}

	if err := h.SiteInfo.Reset(r.Context(), key); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Reset style %s: %v", key, err))
		respondNotice(w, http.StatusInternalServerError, "Could not reset style value")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondNotice(w http.ResponseWriter, status int, notice string) {
	respondJSON(w, status, map[string]string{"notice": notice})
}
