// Package store defines the contract every book persistence backend fulfils
// and the errors they report.
//
// Three backends implement BookStore:
//
//   - database/books.Repository: SQLite through gorm (default)
//   - database/postgres.Repository: Postgres through pgx
//   - filestore.Store: a single JSON document on disk
//
// Exactly one backend is opened per process, before the HTTP server starts
// accepting requests.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ErrNotFound is returned when an operation targets an unknown book id.
var ErrNotFound = errors.New("book not found")

// PersistenceError reports that the backing medium could not be read,
// reached or written.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps err as a PersistenceError for operation op.
// ErrNotFound and nil pass through untouched.
func Persistence(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// BookStore owns the authoritative book collection.
type BookStore interface {
	List(ctx context.Context) ([]entities.BookRecord, error)
	Create(ctx context.Context, book entities.NewBook) (entities.BookRecord, error)
	UpdateStatus(ctx context.Context, id string, isRead bool, completedAt *string) (entities.BookRecord, error)
	UpdateFields(ctx context.Context, id string, fields entities.BookFields) (entities.BookRecord, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}
