// Package filestore keeps the book collection in a single JSON document.
//
// Every mutation reads the whole document, changes one record and writes the
// document back. A mutex serializes those cycles within the process, and the
// write goes through a temp file and rename so readers never observe a
// partially written document.
package filestore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/store"
)

const idLength = 9

type Options struct {
	// Envelope writes {"books": [...]} instead of a bare array.
	Envelope bool
	Logger   *zap.Logger
}

type Store struct {
	path     string
	envelope bool
	logger   *zap.Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

func New(path string, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:     path,
		envelope: opts.Envelope,
		logger:   logger,
		now:      time.Now,
		newID:    randomID,
	}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) List(ctx context.Context) ([]entities.BookRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *Store) Create(ctx context.Context, book entities.NewBook) (entities.BookRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	record := entities.BookRecord{
		ID:       s.uniqueID(records),
		Title:    book.Title,
		Author:   book.Author,
		Category: book.Category,
		IsRead:   false,
		AddedAt:  entities.FormatTimestamp(s.now()),
	}
	records = append(records, record)
	if err := s.save(records); err != nil {
		return entities.BookRecord{}, store.Persistence("create book", err)
	}
	return record, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, isRead bool, completedAt *string) (entities.BookRecord, error) {
	return s.mutate("update book status", id, func(r *entities.BookRecord) {
		r.IsRead = isRead
		r.CompletedAt = entities.CompletionFor(isRead, completedAt)
	})
}

func (s *Store) UpdateFields(ctx context.Context, id string, fields entities.BookFields) (entities.BookRecord, error) {
	return s.mutate("update book fields", id, func(r *entities.BookRecord) {
		r.Title = fields.Title
		r.Author = fields.Author
		r.Category = fields.Category
	})
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	idx := indexOf(records, id)
	if idx < 0 {
		return fmt.Errorf("delete book %q: %w", id, store.ErrNotFound)
	}
	records = append(records[:idx], records[idx+1:]...)
	return store.Persistence("delete book", s.save(records))
}

// Ping checks that the document can be read.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := ReadDocument(s.path); err != nil {
		return store.Persistence("ping", err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) mutate(op, id string, apply func(*entities.BookRecord)) (entities.BookRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load()
	idx := indexOf(records, id)
	if idx < 0 {
		return entities.BookRecord{}, fmt.Errorf("%s %q: %w", op, id, store.ErrNotFound)
	}
	apply(&records[idx])
	if err := s.save(records); err != nil {
		return entities.BookRecord{}, store.Persistence(op, err)
	}
	return records[idx], nil
}

// load must be called with mu held. Unreadable documents count as empty.
func (s *Store) load() []entities.BookRecord {
	records, err := ReadDocument(s.path)
	if err != nil {
		s.logger.Warn("book document unreadable, treating as empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return []entities.BookRecord{}
	}
	return records
}

func (s *Store) save(records []entities.BookRecord) error {
	return WriteDocument(s.path, records, s.envelope)
}

func (s *Store) uniqueID(records []entities.BookRecord) string {
	for {
		id := s.newID()
		if indexOf(records, id) < 0 {
			return id
		}
	}
}

func indexOf(records []entities.BookRecord, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// randomID returns a 9-character lowercase alphanumeric token.
func randomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
}
