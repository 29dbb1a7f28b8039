package models

import (
	"encoding/json"
	"time"
)

const DefaultCategoryColor = "#3498db"

type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Identity is the verified payload of a bearer token.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// NoteCategory is the subset of a category embedded in note responses.
type NoteCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Note struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	UserID     string        `json:"userId"`
	CategoryID *string       `json:"categoryId"`
	Category   *NoteCategory `json:"category"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type NoteFilter struct {
	OwnerID    string
	CategoryID string
}

type NoteInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID string `json:"categoryId"`
}

// NotePatch carries a partial update. Nil pointers and an unset CategoryID
// leave the stored value untouched.
type NotePatch struct {
	Title      *string    `json:"title"`
	Content    *string    `json:"content"`
	CategoryID OptionalID `json:"categoryId"`
}

// OptionalID distinguishes an absent JSON field from an explicit null.
// Set with an empty Value clears the reference.
type OptionalID struct {
	Set   bool
	Value string
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = ""
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
