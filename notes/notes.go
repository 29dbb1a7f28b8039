// Package notes is the access-scoped note service. Every operation takes the
// caller's verified identity and only ever touches notes that identity owns.
// Category references are checked against the category directory on write.
package notes

import (
	"context"
	"strings"
	"unicode/utf8"

	"note-taking-api/apperr"
	"note-taking-api/models"

	"github.com/google/uuid"
)

const maxTitleLength = 100

type Store interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	Get(ctx context.Context, id, ownerID string) (*models.Note, error)
	List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	Update(ctx context.Context, id, ownerID string, patch models.NotePatch) (*models.Note, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type CategoryDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (*models.Category, error)
}

type Service struct {
	notes      Store
	categories CategoryDirectory
}

func NewService(notes Store, categories CategoryDirectory) *Service {
	return &Service{notes: notes, categories: categories}
}

func (s *Service) List(ctx context.Context, who models.Identity) ([]models.Note, error) {
	if err := authorize(who); err != nil {
		return nil, err
	}
	return s.notes.List(ctx, models.NoteFilter{OwnerID: who.UserID})
}

func (s *Service) Get(ctx context.Context, who models.Identity, noteID string) (*models.Note, error) {
	if err := authorize(who); err != nil {
		return nil, err
	}
	if !validID(noteID) {
		return nil, notFound(noteID)
	}
	return s.notes.Get(ctx, noteID, who.UserID)
}

func (s *Service) Create(ctx context.Context, who models.Identity, input models.NoteInput) (*models.Note, error) {
	if err := authorize(who); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, apperr.Validation("Title and content are required")
	}
	if err := checkTitle(title); err != nil {
		return nil, err
	}

	note := &models.Note{
		Title:   title,
		Content: content,
		UserID:  who.UserID,
	}
	if categoryID := strings.TrimSpace(input.CategoryID); categoryID != "" {
		if err := s.requireCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		note.CategoryID = &categoryID
	}

	return s.notes.Create(ctx, note)
}

// Update applies the fields present in patch to a note the caller owns.
func (s *Service) Update(ctx context.Context, who models.Identity, noteID string, patch models.NotePatch) (*models.Note, error) {
	if err := authorize(who); err != nil {
		return nil, err
	}
	if !validID(noteID) {
		return nil, notFound(noteID)
	}

	if _, err := s.notes.Get(ctx, noteID, who.UserID); err != nil {
		return nil, err
	}

	// Only present fields reach the store; absent ones keep whatever is
	// stored when the update lands.
	var changes models.NotePatch
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validation("Title cannot be empty")
		}
		if err := checkTitle(title); err != nil {
			return nil, err
		}
		changes.Title = &title
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return nil, apperr.Validation("Content cannot be empty")
		}
		changes.Content = &content
	}
	if patch.CategoryID.Set {
		categoryID := strings.TrimSpace(patch.CategoryID.Value)
		if categoryID != "" {
			if err := s.requireCategory(ctx, categoryID); err != nil {
				return nil, err
			}
		}
		changes.CategoryID = models.OptionalID{Set: true, Value: categoryID}
	}

	return s.notes.Update(ctx, noteID, who.UserID, changes)
}

func (s *Service) Delete(ctx context.Context, who models.Identity, noteID string) error {
	if err := authorize(who); err != nil {
		return err
	}
	if !validID(noteID) {
		return notFound(noteID)
	}
	return s.notes.Delete(ctx, noteID, who.UserID)
}

// ListByCategory returns the category together with the caller's notes in
// it. Other users' notes in the same category are never included.
func (s *Service) ListByCategory(ctx context.Context, who models.Identity, categoryID string) (*models.Category, []models.Note, error) {
	if err := authorize(who); err != nil {
		return nil, nil, err
	}

	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}

	notes, err := s.notes.List(ctx, models.NoteFilter{OwnerID: who.UserID, CategoryID: category.ID})
	if err != nil {
		return nil, nil, err
	}
	return category, notes, nil
}

func (s *Service) requireCategory(ctx context.Context, categoryID string) error {
	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.Validation("Category with ID %s not found", categoryID)
	}
	return nil
}

func authorize(who models.Identity) error {
	if who.UserID == "" {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

func checkTitle(title string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return apperr.Validation("Title cannot be more than %d characters", maxTitleLength)
	}
	return nil
}

func notFound(noteID string) error {
	return apperr.NotFound("Note with ID %s not found or unauthorized", noteID)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
