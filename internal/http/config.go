package http

import (
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/store"
)

// RouterConfig holds all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Store   store.BookStore
	Logger  *zap.Logger
	Version string

	// ReadOnly rejects mutating requests with 403.
	ReadOnly bool
}
