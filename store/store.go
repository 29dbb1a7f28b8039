// Package store persists users, categories and notes in MySQL. Every call
// runs under its own deadline derived from the configured query timeout.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const mysqlDuplicateEntry = 1062

type Stores struct {
	Users      *UserStore
	Categories *CategoryStore
	Notes      *NoteStore
}

func New(db *sqlx.DB, queryTimeout time.Duration) *Stores {
	b := base{db: db, timeout: queryTimeout, now: utcNow}
	return &Stores{
		Users:      &UserStore{base: b},
		Categories: &CategoryStore{base: b},
		Notes:      &NoteStore{base: b},
	}
}

type base struct {
	db      *sqlx.DB
	timeout time.Duration
	now     func() time.Time
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

// Ping reports whether the database is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	ctx, cancel := s.Notes.withTimeout(ctx)
	defer cancel()
	return s.Notes.db.PingContext(ctx)
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
