// Package books provides book CRUD operations on the SQLite database.
//
// # Interface Implementation
//
//	var _ store.BookStore = (*Repository)(nil)
//
// # Usage
//
//	repo := books.NewRepository(db)
//	record, err := repo.UpdateStatus(ctx, "12", true, &completedAt)
package books

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/store"
)

// Repository handles all book database operations.
type Repository struct {
	*database.Database
	now func() time.Time
}

// NewRepository creates a new books repository.
func NewRepository(db *database.Database) *Repository {
	return &Repository{Database: db, now: time.Now}
}

// List returns every book in insertion order.
func (r *Repository) List(ctx context.Context) ([]entities.BookRecord, error) {
	var rows []entities.Book
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, store.Persistence("list books", err)
	}
	return entities.ToRecords(rows), nil
}

// Create inserts a new unread book. The id and added_at are assigned here.
func (r *Repository) Create(ctx context.Context, book entities.NewBook) (entities.BookRecord, error) {
	row := entities.Book{
		Title:    book.Title,
		Author:   book.Author,
		Category: string(book.Category),
		AddedAt:  r.now().UTC(),
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.BookRecord{}, store.Persistence("create book", err)
	}
	return entities.ToRecord(row), nil
}

// UpdateStatus sets is_read and replaces completed_at. Marking a book unread
// always clears its completion value.
func (r *Repository) UpdateStatus(ctx context.Context, id string, isRead bool, completedAt *string) (entities.BookRecord, error) {
	return r.updateRow(ctx, "update book status", id, map[string]any{
		"is_read":      isRead,
		"completed_at": entities.CompletionFor(isRead, completedAt),
	})
}

// UpdateFields replaces title, author and category, leaving status and
// timestamps untouched.
func (r *Repository) UpdateFields(ctx context.Context, id string, fields entities.BookFields) (entities.BookRecord, error) {
	return r.updateRow(ctx, "update book fields", id, map[string]any{
		"title":    fields.Title,
		"author":   fields.Author,
		"category": string(fields.Category),
	})
}

// Delete removes a book permanently.
func (r *Repository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return fmt.Errorf("delete book %q: %w", id, store.ErrNotFound)
	}

	result := r.DB.WithContext(ctx).Delete(&entities.Book{}, key)
	if result.Error != nil {
		return store.Persistence("delete book", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete book %q: %w", id, store.ErrNotFound)
	}
	return nil
}

// updateRow applies fields to a single row and reads it back in the same
// transaction.
func (r *Repository) updateRow(ctx context.Context, op, id string, fields map[string]any) (entities.BookRecord, error) {
	key, ok := parseID(id)
	if !ok {
		return entities.BookRecord{}, fmt.Errorf("%s %q: %w", op, id, store.ErrNotFound)
	}

	var row entities.Book
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Book{}).Where("id = ?", key).Updates(fields)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%s %q: %w", op, id, store.ErrNotFound)
		}
		return tx.First(&row, key).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BookRecord{}, fmt.Errorf("%s %q: %w", op, id, store.ErrNotFound)
	}
	if err != nil {
		return entities.BookRecord{}, store.Persistence(op, err)
	}
	return entities.ToRecord(row), nil
}

func parseID(id string) (uint, bool) {
	key, err := strconv.ParseUint(id, 10, 64)
	if err != nil || key == 0 {
		return 0, false
	}
	return uint(key), true
}
