package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToRecord(t *testing.T) {
	t.Run("renders id and timestamps", func(t *testing.T) {
		added := time.Date(2024, 3, 1, 10, 30, 15, 123456789, time.FixedZone("CET", 3600))

		record := ToRecord(Book{
			ID:       42,
			Title:    "Dune",
			Author:   "Herbert",
			Category: string(CategorySciFiFantasyHorror),
			AddedAt:  added,
		})

		assert.Equal(t, "42", record.ID)
		assert.Equal(t, "Dune", record.Title)
		assert.Equal(t, CategorySciFiFantasyHorror, record.Category)
		assert.False(t, record.IsRead)
		assert.Equal(t, "2024-03-01T09:30:15.123Z", record.AddedAt)
		assert.Nil(t, record.CompletedAt)
	})

	t.Run("keeps completion value", func(t *testing.T) {
		record := ToRecord(Book{ID: 1, IsRead: true, CompletedAt: strPtr("2024-03")})

		require.NotNil(t, record.CompletedAt)
		assert.Equal(t, "2024-03", *record.CompletedAt)
	})

	t.Run("empty completion maps to no value", func(t *testing.T) {
		record := ToRecord(Book{ID: 1, CompletedAt: strPtr("")})

		assert.Nil(t, record.CompletedAt)
	})
}

func TestToRecords_PreservesOrder(t *testing.T) {
	records := ToRecords([]Book{{ID: 3}, {ID: 1}, {ID: 2}})

	require.Len(t, records, 3)
	assert.Equal(t, "3", records[0].ID)
	assert.Equal(t, "1", records[1].ID)
	assert.Equal(t, "2", records[2].ID)
}

func TestParseCompletedAt(t *testing.T) {
	valid := []string{"2024-03", "2024-03-15", "2024-03-15T10:00:00Z", "2024-03-15T10:00:00.123+02:00"}
	for _, v := range valid {
		t.Run(v, func(t *testing.T) {
			got, err := ParseCompletedAt(strPtr(v))
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, v, *got)
		})
	}

	t.Run("nil and blank mean no value", func(t *testing.T) {
		got, err := ParseCompletedAt(nil)
		assert.NoError(t, err)
		assert.Nil(t, got)

		got, err = ParseCompletedAt(strPtr("  "))
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		_, err := ParseCompletedAt(strPtr("March 2024"))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "completedAt", verr.Field)
	})
}

func TestCompletionFor(t *testing.T) {
	assert.Nil(t, CompletionFor(false, strPtr("2024-03")))
	assert.Nil(t, CompletionFor(true, nil))
	assert.Equal(t, "2024-03", *CompletionFor(true, strPtr("2024-03")))
}

func TestBookFields_Validate(t *testing.T) {
	t.Run("trims fields", func(t *testing.T) {
		fields := BookFields{Title: "  Dune ", Author: " Herbert", Category: "Sci-fi, Fantasy and Horror "}

		require.NoError(t, fields.Validate())
		assert.Equal(t, "Dune", fields.Title)
		assert.Equal(t, "Herbert", fields.Author)
		assert.Equal(t, CategorySciFiFantasyHorror, fields.Category)
	})

	tests := []struct {
		name   string
		fields BookFields
		field  string
	}{
		{"missing title", BookFields{Author: "A", Category: CategoryNonFiction}, "title"},
		{"blank author", BookFields{Title: "T", Author: "  ", Category: CategoryNonFiction}, "author"},
		{"missing category", BookFields{Title: "T", Author: "A"}, "category"},
		{"unknown category", BookFields{Title: "T", Author: "A", Category: "fiction"}, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fields.Validate()

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNewBook_Validate(t *testing.T) {
	book := NewBook{Title: " Foundation ", Author: "Asimov", Category: CategorySciFiFantasyHorror}

	require.NoError(t, book.Validate())
	assert.Equal(t, "Foundation", book.Title)

	bad := NewBook{Title: "X", Author: "Y", Category: "poetry"}
	assert.Error(t, bad.Validate())
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Category("").IsValid())
	assert.False(t, Category("science").IsValid())
}

func TestFilterByCategory(t *testing.T) {
	records := []BookRecord{
		{ID: "1", Category: CategoryNovelsAndFiction},
		{ID: "2", Category: CategoryCrimeAndThrillers},
		{ID: "3", Category: CategoryNovelsAndFiction},
	}

	assert.Len(t, FilterByCategory(records, ""), 3)
	assert.Len(t, FilterByCategory(records, "All"), 3)

	fiction := FilterByCategory(records, string(CategoryNovelsAndFiction))
	require.Len(t, fiction, 2)
	assert.Equal(t, "1", fiction[0].ID)
	assert.Equal(t, "3", fiction[1].ID)

	assert.Empty(t, FilterByCategory(records, string(CategoryRomance)))
}
