package store

import (
	"context"
	"fmt"

	"note-taking-api/apperr"
	"note-taking-api/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type UserStore struct {
	base
}

// Create assigns the user an id and creation time and inserts it. Duplicate
// usernames or emails are reported as conflicts.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = s.now()

	query, args, err := squirrel.
		Insert("users").
		Columns("id", "username", "email", "password_hash", "created_at").
		Values(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicate(err) {
			return apperr.Conflict(err, "username or email already registered")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query, args, err := squirrel.
		Select("id", "username", "email", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user models.User
	if err = s.db.GetContext(ctx, &user, query, args...); err != nil {
		if isNoRows(err) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}
