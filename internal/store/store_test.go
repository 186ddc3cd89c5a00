package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistence(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Persistence("list books", nil))
	})

	t.Run("not found passes through", func(t *testing.T) {
		err := Persistence("delete book", fmt.Errorf("id 7: %w", ErrNotFound))

		assert.ErrorIs(t, err, ErrNotFound)
		var perr *PersistenceError
		assert.False(t, errors.As(err, &perr))
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("disk full")
		err := Persistence("create book", cause)

		var perr *PersistenceError
		assert.True(t, errors.As(err, &perr))
		assert.Equal(t, "create book", perr.Op)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "create book: disk full", err.Error())
	})
}
