// Package interfaces documents the core abstractions used throughout the application.
//
// # Book Store
//
// store.BookStore (internal/store/store.go) is the single persistence contract.
// Exactly one implementation is opened per process by entrypoint.OpenStore:
//
//   - books.Repository (internal/database/books): SQLite through gorm
//   - postgres.Repository (internal/database/postgres): Postgres through pgx
//   - filestore.Store (internal/filestore): one JSON document on disk
//
// Implementations report an unknown id with store.ErrNotFound (wrapped with %w)
// and medium failures as *store.PersistenceError. The HTTP layer depends on
// nothing else.
//
// # Adding a New Backend
//
//  1. Create a package implementing every BookStore method:
//
//     type Repository struct { client *redis.Client }
//
//     func (r *Repository) List(ctx context.Context) ([]entities.BookRecord, error)
//     ...
//
//  2. Add a config.StoreBackend value and its settings in internal/config.
//
//  3. Open it in entrypoint.OpenStore, running any schema setup there.
//
//  4. Add a compile-time check to checks.go:
//
//     var _ store.BookStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
