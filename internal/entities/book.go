package entities

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryNovelsAndFiction      Category = "Novels and Fiction"
	CategorySciFiFantasyHorror    Category = "Sci-fi, Fantasy and Horror"
	CategoryCrimeAndThrillers     Category = "Crime and Thrillers"
	CategoryRomance               Category = "Romance and Relationships"
	CategoryNonFiction            Category = "Non-Fiction / Educational"
	CategoryPersonalDevelopment   Category = "Personal Development and Motivation"
	CategoryBiographiesAndTravel  Category = "Biographies and Travel"
	CategoryChildrenAndYoungAdult Category = "Children's and Young Adult Books"
	CategoryArtCultureHobbies     Category = "Art, Culture and Hobbies"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryNovelsAndFiction,
	CategorySciFiFantasyHorror,
	CategoryCrimeAndThrillers,
	CategoryRomance,
	CategoryNonFiction,
	CategoryPersonalDevelopment,
	CategoryBiographiesAndTravel,
	CategoryChildrenAndYoungAdult,
	CategoryArtCultureHobbies,
}

// IsValid reports whether c is one of Categories.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Book is the relational row shape of a tracked book.
// CompletedAt keeps the client-supplied completion value verbatim
// ("2024-03", "2024-03-15" or RFC 3339), NULL while unread.
type Book struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"not null"`
	Author      string    `gorm:"not null;index"`
	Category    string    `gorm:"not null;index"`
	IsRead      bool      `gorm:"not null;default:false"`
	AddedAt     time.Time `gorm:"not null"`
	CompletedAt *string
}

// NewBook carries the fields a client supplies on creation.
type NewBook struct {
	Title    string
	Author   string
	Category Category
}

// BookFields are the descriptive fields replaced by a field update.
type BookFields struct {
	Title    string
	Author   string
	Category Category
}

// Validate trims and checks the descriptive fields.
func (f *BookFields) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Category = Category(strings.TrimSpace(string(f.Category)))

	if f.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if f.Author == "" {
		return &ValidationError{Field: "author", Message: "is required"}
	}
	if f.Category == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if !f.Category.IsValid() {
		return &ValidationError{Field: "category", Message: "is not a known category"}
	}
	return nil
}

// Validate trims and checks the fields of a new book.
func (b *NewBook) Validate() error {
	fields := BookFields(*b)
	if err := fields.Validate(); err != nil {
		return err
	}
	*b = NewBook(fields)
	return nil
}
