package handlers

import (
	"net/http"

	"note-taking-api/middleware"
	"note-taking-api/models"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.List(r.Context(), middleware.IdentityFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondList(w, len(notes), map[string]any{"notes": notes})
}

func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.notes.Get(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"note": note})
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var input models.NoteInput
	if err := decodeJSON(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	note, err := h.notes.Create(r.Context(), middleware.IdentityFrom(r.Context()), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, map[string]any{"note": note})
}

func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var patch models.NotePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		h.writeError(w, r, err)
		return
	}

	note, err := h.notes.Update(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"note": note})
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.Delete(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetNotesByCategory(w http.ResponseWriter, r *http.Request) {
	category, notes, err := h.notes.ListByCategory(r.Context(), middleware.IdentityFrom(r.Context()), chi.URLParam(r, "categoryId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respondList(w, len(notes), map[string]any{"category": category, "notes": notes})
}
