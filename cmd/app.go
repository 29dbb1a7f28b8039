package cmd

import (
	"fmt"
	"net/http"

	"note-taking-api/auth"
	"note-taking-api/categories"
	"note-taking-api/config"
	"note-taking-api/handlers"
	"note-taking-api/metrics"
	"note-taking-api/notes"
)

// Backends are the storage implementations the services run on.
type Backends struct {
	Users      auth.UserDirectory
	Categories categories.Store
	Notes      notes.Store
	Health     handlers.HealthChecker
}

// NewHandler composes the services over the given backends and returns the
// HTTP router.
func NewHandler(cfg *config.Config, b Backends) (http.Handler, error) {
	creds, err := auth.NewService(b.Users, cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("creating credential service: %w", err)
	}
	cats := categories.NewService(b.Categories)
	noteService := notes.NewService(b.Notes, cats)

	opts := handlers.RouterOptions{RequestLogging: true}
	if cfg.Metrics.Enabled {
		opts.Metrics = metrics.New()
		opts.MetricsPath = cfg.Metrics.Path
	}

	return handlers.New(creds, noteService, cats, b.Health).Router(opts), nil
}
