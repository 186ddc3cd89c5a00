// Package database provides the relational data access layer.
//
// # Architecture
//
//	database/
//	├── database.go      # SQLite connection setup and migrations (gorm)
//	├── books/           # Book CRUD on top of the gorm connection
//	└── postgres/        # Same contract against Postgres through pgx
//
// # Usage
//
//	db, err := database.NewDatabase("./bookshelf.db")
//	repo := books.NewRepository(db)
//	record, err := repo.Create(ctx, entities.NewBook{...})
//
// Both books.Repository and postgres.Repository implement store.BookStore.
// Compile-time checks live in internal/interfaces.
package database
