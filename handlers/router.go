package handlers

import (
	"fmt"
	"net/http"

	"note-taking-api/apperr"
	"note-taking-api/metrics"
	appmw "note-taking-api/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterOptions struct {
	// Metrics is optional; when set, requests are instrumented and the
	// exposition endpoint is mounted at MetricsPath.
	Metrics     *metrics.Metrics
	MetricsPath string
	// RequestLogging enables chi's access log.
	RequestLogging bool
}

func (h *Handler) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.RequestLogging {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(appmw.CORS)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, opts.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, apperr.NotFound("Cannot find %s on this server", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, envelope{
			Status:  "fail",
			Message: fmt.Sprintf("Method %s not allowed on %s", r.Method, r.URL.Path),
		})
	})

	r.Get("/healthz", h.Health)

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	r.Post("/categories", h.CreateCategory)
	r.Get("/categories", h.GetCategories)

	r.Group(func(r chi.Router) {
		r.Use(appmw.RequireAuth(h.auth, h.writeError))
		r.Get("/notes", h.GetNotes)
		r.Post("/notes", h.CreateNote)
		r.Get("/notes/categories/{categoryId}", h.GetNotesByCategory)
		r.Get("/notes/{id}", h.GetNote)
		r.Patch("/notes/{id}", h.UpdateNote)
		r.Delete("/notes/{id}", h.DeleteNote)
	})

	return r
}
