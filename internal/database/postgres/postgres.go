// Package postgres implements the book store against a Postgres books table
// through a pgx connection pool. Every mutation is a single statement with a
// RETURNING clause, so a row is never read and written in separate round
// trips.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/store"
)

// Connect opens a pgx connection pool using the provided DSN.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the books table if needed.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS books (
	id SERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	category TEXT NOT NULL,
	is_read BOOLEAN NOT NULL DEFAULT FALSE,
	added_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at TEXT
);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const columns = `id, title, author, category, is_read, added_at, completed_at`

// Repository wraps all SQL for the books table.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all books ordered by id.
func (r *Repository) List(ctx context.Context) ([]entities.BookRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+columns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, store.Persistence("list books", err)
	}
	defer rows.Close()

	var books []entities.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, store.Persistence("list books", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Persistence("list books", err)
	}
	return entities.ToRecords(books), nil
}

// Create inserts an unread book; id and added_at come from column defaults.
func (r *Repository) Create(ctx context.Context, book entities.NewBook) (entities.BookRecord, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO books (title, author, category)
		VALUES ($1, $2, $3)
		RETURNING `+columns,
		book.Title, book.Author, string(book.Category))
	created, err := scanBook(row)
	if err != nil {
		return entities.BookRecord{}, store.Persistence("create book", err)
	}
	return entities.ToRecord(created), nil
}

// UpdateStatus sets is_read and replaces completed_at.
func (r *Repository) UpdateStatus(ctx context.Context, id string, isRead bool, completedAt *string) (entities.BookRecord, error) {
	key, ok := parseID(id)
	if !ok {
		return entities.BookRecord{}, fmt.Errorf("update book status %q: %w", id, store.ErrNotFound)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE books SET is_read = $1, completed_at = $2
		WHERE id = $3
		RETURNING `+columns,
		isRead, entities.CompletionFor(isRead, completedAt), key)
	return r.returning(row, "update book status", id)
}

// UpdateFields replaces title, author and category.
func (r *Repository) UpdateFields(ctx context.Context, id string, fields entities.BookFields) (entities.BookRecord, error) {
	key, ok := parseID(id)
	if !ok {
		return entities.BookRecord{}, fmt.Errorf("update book fields %q: %w", id, store.ErrNotFound)
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE books SET title = $1, author = $2, category = $3
		WHERE id = $4
		RETURNING `+columns,
		fields.Title, fields.Author, string(fields.Category), key)
	return r.returning(row, "update book fields", id)
}

// Delete removes a book by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return fmt.Errorf("delete book %q: %w", id, store.ErrNotFound)
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, key)
	if err != nil {
		return store.Persistence("delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete book %q: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) returning(row pgx.Row, op, id string) (entities.BookRecord, error) {
	book, err := scanBook(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.BookRecord{}, fmt.Errorf("%s %q: %w", op, id, store.ErrNotFound)
	}
	if err != nil {
		return entities.BookRecord{}, store.Persistence(op, err)
	}
	return entities.ToRecord(book), nil
}

func scanBook(row pgx.Row) (entities.Book, error) {
	var (
		book        entities.Book
		id          int64
		completedAt sql.NullString
	)
	if err := row.Scan(&id, &book.Title, &book.Author, &book.Category, &book.IsRead, &book.AddedAt, &completedAt); err != nil {
		return entities.Book{}, err
	}
	book.ID = uint(id)
	if completedAt.Valid {
		value := completedAt.String
		book.CompletedAt = &value
	}
	return book, nil
}

// parseID accepts the decimal form of a SERIAL key.
func parseID(id string) (int32, bool) {
	key, err := strconv.ParseInt(id, 10, 32)
	if err != nil || key <= 0 {
		return 0, false
	}
	return int32(key), true
}
