package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"note-taking-api/apperr"
	"note-taking-api/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type NoteStore struct {
	base
}

type noteRow struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Content       string         `db:"content"`
	UserID        string         `db:"user_id"`
	CategoryID    sql.NullString `db:"category_id"`
	CategoryName  sql.NullString `db:"category_name"`
	CategoryColor sql.NullString `db:"category_color"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r noteRow) toModel() models.Note {
	note := models.Note{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.CategoryID.Valid {
		id := r.CategoryID.String
		note.CategoryID = &id
		// A category row that vanished leaves the reference unresolved.
		if r.CategoryName.Valid {
			note.Category = &models.NoteCategory{
				ID:    id,
				Name:  r.CategoryName.String,
				Color: r.CategoryColor.String,
			}
		}
	}
	return note
}

func selectNotes() squirrel.SelectBuilder {
	return squirrel.
		Select(
			"n.id",
			"n.title",
			"n.content",
			"n.user_id",
			"n.category_id",
			"c.name AS category_name",
			"c.color AS category_color",
			"n.created_at",
			"n.updated_at",
		).
		From("notes n").
		LeftJoin("categories c ON c.id = n.category_id")
}

func (s *NoteStore) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	note.ID = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now

	query, args, err := squirrel.
		Insert("notes").
		Columns("id", "title", "content", "user_id", "category_id", "created_at", "updated_at").
		Values(note.ID, note.Title, note.Content, note.UserID, note.CategoryID, note.CreatedAt, note.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return s.get(ctx, note.ID, note.UserID)
}

// Get returns the note only when it belongs to ownerID.
func (s *NoteStore) Get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.get(ctx, id, ownerID)
}

func (s *NoteStore) get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	query, args, err := selectNotes().
		Where(squirrel.Eq{"n.id": id, "n.user_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var row noteRow
	if err = s.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("Note with ID %s not found or unauthorized", id)
		}
		return nil, fmt.Errorf("failed to get note '%s' for user '%s': %w", id, ownerID, err)
	}

	note := row.toModel()
	return &note, nil
}

// List returns the owner's notes, most recently updated first, optionally
// narrowed to one category.
func (s *NoteStore) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	queryBuilder := selectNotes().Where(squirrel.Eq{"n.user_id": filter.OwnerID})
	if filter.CategoryID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"n.category_id": filter.CategoryID})
	}

	query, args, err := queryBuilder.OrderBy("n.updated_at DESC", "n.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []noteRow
	if err = s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	notes := make([]models.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toModel())
	}
	return notes, nil
}

// Update sets only the fields present in patch on the note matching both id
// and owner, and returns the stored result.
func (s *NoteStore) Update(ctx context.Context, id, ownerID string, patch models.NotePatch) (*models.Note, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	builder := squirrel.Update("notes")
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Content != nil {
		builder = builder.Set("content", *patch.Content)
	}
	if patch.CategoryID.Set {
		var categoryID *string
		if patch.CategoryID.Value != "" {
			categoryID = &patch.CategoryID.Value
		}
		builder = builder.Set("category_id", categoryID)
	}

	query, args, err := builder.
		Set("updated_at", s.now()).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update note '%s': %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update note '%s': %w", id, err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("Note with ID %s not found or unauthorized", id)
	}

	return s.get(ctx, id, ownerID)
}

func (s *NoteStore) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query, args, err := squirrel.
		Delete("notes").
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete note %s for user %s: %w", id, ownerID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete note %s for user %s: %w", id, ownerID, err)
	}
	if affected == 0 {
		return apperr.NotFound("Note with ID %s not found or unauthorized", id)
	}
	return nil
}
