// Package stats derives reading statistics from a snapshot of book records.
package stats

import (
	"sort"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// TopAuthorsLimit caps the number of authors reported in Summary.TopAuthors.
const TopAuthorsLimit = 5

type AuthorCount struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type Summary struct {
	TotalBooks           int                       `json:"totalBooks"`
	ReadBooks            int                       `json:"readBooks"`
	UnreadBooks          int                       `json:"unreadBooks"`
	ReadingProgress      float64                   `json:"readingProgress"`
	CategoryDistribution map[entities.Category]int `json:"categoryDistribution"`
	TopAuthors           []AuthorCount             `json:"topAuthors"`
}

// Compute aggregates records. Authors with equal counts keep the order in
// which they first appear in records.
func Compute(records []entities.BookRecord) Summary {
	summary := Summary{
		TotalBooks:           len(records),
		CategoryDistribution: make(map[entities.Category]int),
		TopAuthors:           []AuthorCount{},
	}

	authorIndex := make(map[string]int)
	var authors []AuthorCount
	for _, r := range records {
		if r.IsRead {
			summary.ReadBooks++
		}
		summary.CategoryDistribution[r.Category]++

		if i, ok := authorIndex[r.Author]; ok {
			authors[i].Count++
			continue
		}
		authorIndex[r.Author] = len(authors)
		authors = append(authors, AuthorCount{Author: r.Author, Count: 1})
	}
	summary.UnreadBooks = summary.TotalBooks - summary.ReadBooks

	if summary.TotalBooks > 0 {
		summary.ReadingProgress = 100 * float64(summary.ReadBooks) / float64(summary.TotalBooks)
	}

	sort.SliceStable(authors, func(i, j int) bool {
		return authors[i].Count > authors[j].Count
	})
	if len(authors) > TopAuthorsLimit {
		authors = authors[:TopAuthorsLimit]
	}
	summary.TopAuthors = append(summary.TopAuthors, authors...)

	return summary
}
