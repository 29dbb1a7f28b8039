package handlers

import (
	"net/http"

	"note-taking-api/categories"
)

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input categories.Input
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	category, err := h.categories.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, map[string]any{"category": category})
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	list, err := h.categories.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondList(w, len(list), map[string]any{"categories": list})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, envelope{Status: "error", Message: "database unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, envelope{Status: "success"})
}
