package categories

import (
	"context"
	"strings"
	"testing"

	"note-taking-api/apperr"
	"note-taking-api/models"
	"note-taking-api/store/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	svc := NewService(memstore.New().Categories())
	ctx := context.Background()

	t.Run("applies default color and trims", func(t *testing.T) {
		category, err := svc.Create(ctx, Input{Name: "  Work  "})
		require.NoError(t, err)
		assert.Equal(t, "Work", category.Name)
		assert.Equal(t, models.DefaultCategoryColor, category.Color)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("keeps explicit color", func(t *testing.T) {
		category, err := svc.Create(ctx, Input{Name: "Home", Description: "chores", Color: "#ff0000"})
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", category.Color)
		assert.Equal(t, "chores", category.Description)
	})

	tests := []struct {
		name  string
		input Input
	}{
		{"empty name", Input{Name: ""}},
		{"blank name", Input{Name: "   "}},
		{"name too long", Input{Name: strings.Repeat("n", 51)}},
		{"description too long", Input{Name: "ok", Description: strings.Repeat("d", 201)}},
		{"bad color", Input{Name: "ok", Color: "blue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.input)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	t.Run("fifty runes is fine", func(t *testing.T) {
		_, err := svc.Create(ctx, Input{Name: strings.Repeat("é", 50)})
		assert.NoError(t, err)
	})
}

func TestListAndExists(t *testing.T) {
	svc := NewService(memstore.New().Categories())
	ctx := context.Background()

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	work, err := svc.Create(ctx, Input{Name: "Work"})
	require.NoError(t, err)

	categories, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	ok, err := svc.Exists(ctx, work.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Exists(ctx, "not-an-id")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Get(ctx, "not-an-id")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
