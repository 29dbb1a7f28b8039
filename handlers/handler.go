package handlers

import (
	"context"
	"log/slog"

	"note-taking-api/auth"
	"note-taking-api/categories"
	"note-taking-api/models"
)

type Credentials interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	VerifyToken(token string) (models.Identity, error)
}

type NoteService interface {
	List(ctx context.Context, who models.Identity) ([]models.Note, error)
	Get(ctx context.Context, who models.Identity, noteID string) (*models.Note, error)
	Create(ctx context.Context, who models.Identity, input models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, who models.Identity, noteID string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, who models.Identity, noteID string) error
	ListByCategory(ctx context.Context, who models.Identity, categoryID string) (*models.Category, []models.Note, error)
}

type CategoryService interface {
	Create(ctx context.Context, input categories.Input) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler holds the services the HTTP endpoints call into. It keeps no
// request state of its own.
type Handler struct {
	auth       Credentials
	notes      NoteService
	categories CategoryService
	health     HealthChecker
	logger     *slog.Logger
}

func New(creds Credentials, notes NoteService, cats CategoryService, health HealthChecker) *Handler {
	return &Handler{
		auth:       creds,
		notes:      notes,
		categories: cats,
		health:     health,
		logger:     slog.Default().With("component", "http"),
	}
}
