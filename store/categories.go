package store

import (
	"context"
	"fmt"

	"note-taking-api/apperr"
	"note-taking-api/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var categoryColumns = []string{"id", "name", "description", "color", "created_at", "updated_at"}

type CategoryStore struct {
	base
}

func (s *CategoryStore) Create(ctx context.Context, category *models.Category) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	category.ID = uuid.NewString()
	category.CreatedAt = now
	category.UpdatedAt = now

	query, args, err := squirrel.
		Insert("categories").
		Columns(categoryColumns...).
		Values(category.ID, category.Name, category.Description, category.Color, category.CreatedAt, category.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query, args, err := squirrel.Select(categoryColumns...).From("categories").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	categories := []models.Category{}
	if err = s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query, args, err := squirrel.
		Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var category models.Category
	if err = s.db.GetContext(ctx, &category, query, args...); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Category with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get category '%s': %w", id, err)
	}
	return &category, nil
}
