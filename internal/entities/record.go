package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout renders store-assigned timestamps as ISO-8601 UTC with
// millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// CompletionLayouts are the accepted shapes of a completion value, from the
// month picker ("2024-03") to a full RFC 3339 timestamp.
var CompletionLayouts = []string{
	"2006-01",
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// BookRecord is the application-facing shape of a book, shared by the HTTP
// API and the JSON document store.
type BookRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    Category `json:"category"`
	IsRead      bool     `json:"isRead"`
	AddedAt     string   `json:"addedAt"`
	CompletedAt *string  `json:"completedAt"`
}

// ToRecord converts a relational row into a BookRecord.
func ToRecord(b Book) BookRecord {
	return BookRecord{
		ID:          strconv.FormatUint(uint64(b.ID), 10),
		Title:       b.Title,
		Author:      b.Author,
		Category:    Category(b.Category),
		IsRead:      b.IsRead,
		AddedAt:     FormatTimestamp(b.AddedAt),
		CompletedAt: nonEmpty(b.CompletedAt),
	}
}

// ToRecords maps a slice of rows, preserving order.
func ToRecords(rows []Book) []BookRecord {
	records := make([]BookRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ToRecord(row))
	}
	return records
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseCompletedAt validates a completion value and returns it trimmed.
// A nil or blank value means "no completion date".
func ParseCompletedAt(value *string) (*string, error) {
	v := nonEmpty(value)
	if v == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*v)
	for _, layout := range CompletionLayouts {
		if _, err := time.Parse(layout, trimmed); err == nil {
			return &trimmed, nil
		}
	}
	return nil, &ValidationError{
		Field:   "completedAt",
		Message: fmt.Sprintf("must be a month (YYYY-MM), a date (YYYY-MM-DD) or an RFC 3339 timestamp, got %q", trimmed),
	}
}

// CompletionFor returns the completion value to persist for a status
// transition: the supplied value when marking read, nothing otherwise.
func CompletionFor(isRead bool, completedAt *string) *string {
	if !isRead {
		return nil
	}
	return nonEmpty(completedAt)
}

// FilterByCategory returns the records in the given category. An empty
// category or "All" returns every record.
func FilterByCategory(records []BookRecord, category string) []BookRecord {
	if category == "" || category == "All" {
		return records
	}
	filtered := make([]BookRecord, 0, len(records))
	for _, r := range records {
		if string(r.Category) == category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
