// Package memstore keeps users, categories and notes in memory with the same
// contracts as the MySQL stores. Tests use it to exercise services and
// handlers without a database.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"note-taking-api/apperr"
	"note-taking-api/models"

	"github.com/google/uuid"
)

type Store struct {
	mu         sync.RWMutex
	users      map[string]models.User
	categories []models.Category
	notes      []models.Note

	clock time.Time
	// Tick is added to the clock on every write so updatedAt is strictly
	// increasing.
	Tick time.Duration
}

func New() *Store {
	return &Store{
		users: make(map[string]models.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Tick:  time.Millisecond,
	}
}

func (s *Store) now() time.Time {
	s.clock = s.clock.Add(s.Tick)
	return s.clock
}

// Users

func (s *Store) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperr.Conflict(nil, "username or email already registered")
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}

// Categories returns a view of the store satisfying the category directory
// contract.
func (s *Store) Categories() *Categories {
	return &Categories{s: s}
}

// Notes returns a view of the store satisfying the note store contract.
func (s *Store) Notes() *Notes {
	return &Notes{s: s}
}

type Categories struct {
	s *Store
}

func (c *Categories) Create(ctx context.Context, category *models.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	now := c.s.now()
	category.ID = uuid.NewString()
	category.CreatedAt = now
	category.UpdatedAt = now
	c.s.categories = append(c.s.categories, *category)
	return nil
}

func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := make([]models.Category, len(c.s.categories))
	copy(out, c.s.categories)
	return out, nil
}

func (c *Categories) Get(ctx context.Context, id string) (*models.Category, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	if category, ok := c.s.category(id); ok {
		return &category, nil
	}
	return nil, apperr.NotFound("Category with ID %s not found", id)
}

// Delete removes a category and nulls out references to it, mirroring the
// ON DELETE SET NULL constraint of the MySQL schema. The API has no category
// deletion; only tests call this to simulate an out-of-band removal.
func (c *Categories) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	for i, category := range c.s.categories {
		if category.ID == id {
			c.s.categories = append(c.s.categories[:i], c.s.categories[i+1:]...)
			for j := range c.s.notes {
				if ref := c.s.notes[j].CategoryID; ref != nil && *ref == id {
					c.s.notes[j].CategoryID = nil
				}
			}
			return nil
		}
	}
	return apperr.NotFound("Category with ID %s not found", id)
}

func (s *Store) category(id string) (models.Category, bool) {
	for _, category := range s.categories {
		if category.ID == id {
			return category, true
		}
	}
	return models.Category{}, false
}

type Notes struct {
	s *Store
}

func (n *Notes) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	now := n.s.now()
	note.ID = uuid.NewString()
	note.CreatedAt = now
	note.UpdatedAt = now
	stored := *note
	stored.CategoryID = cloneID(note.CategoryID)
	stored.Category = nil
	n.s.notes = append(n.s.notes, stored)
	return n.s.resolve(stored), nil
}

func (n *Notes) Get(ctx context.Context, id, ownerID string) (*models.Note, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()

	if i := n.s.indexOf(id, ownerID); i >= 0 {
		return n.s.resolve(n.s.notes[i]), nil
	}
	return nil, apperr.NotFound("Note with ID %s not found or unauthorized", id)
}

func (n *Notes) List(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()

	out := []models.Note{}
	for _, note := range n.s.notes {
		if note.UserID != filter.OwnerID {
			continue
		}
		if filter.CategoryID != "" && (note.CategoryID == nil || *note.CategoryID != filter.CategoryID) {
			continue
		}
		out = append(out, *n.s.resolve(note))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (n *Notes) Update(ctx context.Context, id, ownerID string, patch models.NotePatch) (*models.Note, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	i := n.s.indexOf(id, ownerID)
	if i < 0 {
		return nil, apperr.NotFound("Note with ID %s not found or unauthorized", id)
	}
	stored := &n.s.notes[i]
	if patch.Title != nil {
		stored.Title = *patch.Title
	}
	if patch.Content != nil {
		stored.Content = *patch.Content
	}
	if patch.CategoryID.Set {
		stored.CategoryID = nil
		if patch.CategoryID.Value != "" {
			stored.CategoryID = cloneID(&patch.CategoryID.Value)
		}
	}
	stored.UpdatedAt = n.s.now()
	return n.s.resolve(*stored), nil
}

func (n *Notes) Delete(ctx context.Context, id, ownerID string) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	i := n.s.indexOf(id, ownerID)
	if i < 0 {
		return apperr.NotFound("Note with ID %s not found or unauthorized", id)
	}
	n.s.notes = append(n.s.notes[:i], n.s.notes[i+1:]...)
	return nil
}

func (s *Store) indexOf(id, ownerID string) int {
	for i, note := range s.notes {
		if note.ID == id && note.UserID == ownerID {
			return i
		}
	}
	return -1
}

func (s *Store) resolve(note models.Note) *models.Note {
	out := note
	out.Category = nil
	if note.CategoryID != nil {
		id := *note.CategoryID
		out.CategoryID = &id
		if category, ok := s.category(id); ok {
			out.Category = &models.NoteCategory{ID: category.ID, Name: category.Name, Color: category.Color}
		}
	}
	return &out
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
