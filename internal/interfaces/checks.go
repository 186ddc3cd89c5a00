package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/postgres"
	"github.com/mrlokans/bookshelf/internal/filestore"
	"github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/store"
)

// =============================================================================
// Book Store backends
// =============================================================================

var _ store.BookStore = (*books.Repository)(nil)
var _ store.BookStore = (*postgres.Repository)(nil)
var _ store.BookStore = (*filestore.Store)(nil)

// =============================================================================
// Health checks
// =============================================================================

var _ http.Pinger = (store.BookStore)(nil)
