package categories

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"note-taking-api/apperr"
	"note-taking-api/models"

	"github.com/google/uuid"
)

const (
	maxNameLength        = 50
	maxDescriptionLength = 200
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Store interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id string) (*models.Category, error)
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Service is the category directory. Categories are global; they are not
// owned by any user.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, input Input) (*models.Category, error) {
	category := &models.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Color:       strings.TrimSpace(input.Color),
	}

	if category.Name == "" {
		return nil, apperr.Validation("Category name is required")
	}
	if utf8.RuneCountInString(category.Name) > maxNameLength {
		return nil, apperr.Validation("Category name cannot be more than %d characters", maxNameLength)
	}
	if utf8.RuneCountInString(category.Description) > maxDescriptionLength {
		return nil, apperr.Validation("Description cannot be more than %d characters", maxDescriptionLength)
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	} else if !colorPattern.MatchString(category.Color) {
		return nil, apperr.Validation("Color must be a hex value like %s", models.DefaultCategoryColor)
	}

	if err := s.store.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.store.List(ctx)
}

// Get treats malformed ids like missing ones.
func (s *Service) Get(ctx context.Context, id string) (*models.Category, error) {
	if !validID(id) {
		return nil, apperr.NotFound("Category with ID %s not found", id)
	}
	return s.store.Get(ctx, id)
}

// Exists never fails on bad input: a malformed id simply does not exist.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	if !validID(id) {
		return false, nil
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
