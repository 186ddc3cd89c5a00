package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/store"
)

// setupTestRepo connects to the database named by BOOKSHELF_TEST_POSTGRES_DSN
// and starts from an empty books table. Tests are skipped without it.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("BOOKSHELF_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BOOKSHELF_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dsn, 2)
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE books RESTART IDENTITY`)
	require.NoError(t, err)

	repo := NewRepository(pool)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func strPtr(s string) *string { return &s }

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int32
		ok   bool
	}{
		{"1", 1, true},
		{"2147483647", 2147483647, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"2147483648", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConnect_InvalidDSN(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://%zz", 1)
	assert.Error(t, err)
}

func TestRepository_Lifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.NewBook{Title: "Dune", Author: "Herbert", Category: entities.CategorySciFiFantasyHorror})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.False(t, created.IsRead)
	assert.Nil(t, created.CompletedAt)
	assert.NotEmpty(t, created.AddedAt)

	read, err := repo.UpdateStatus(ctx, created.ID, true, strPtr("2024-03"))
	require.NoError(t, err)
	require.NotNil(t, read.CompletedAt)
	assert.Equal(t, "2024-03", *read.CompletedAt)
	assert.Equal(t, created.AddedAt, read.AddedAt)

	updated, err := repo.UpdateFields(ctx, created.ID, entities.BookFields{Title: "Dune Messiah", Author: "Herbert", Category: entities.CategorySciFiFantasyHorror})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.True(t, updated.IsRead)
	assert.Equal(t, "2024-03", *updated.CompletedAt)

	unread, err := repo.UpdateStatus(ctx, created.ID, false, nil)
	require.NoError(t, err)
	assert.Nil(t, unread.CompletedAt)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), store.ErrNotFound)

	_, err = repo.UpdateStatus(ctx, created.ID, true, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = repo.UpdateFields(ctx, "abc", entities.BookFields{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
