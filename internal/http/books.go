package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/stats"
	"github.com/mrlokans/bookshelf/internal/store"
)

const (
	msgFetchFailed  = "Failed to fetch books"
	msgAddFailed    = "Failed to add book"
	msgUpdateFailed = "Failed to update book"
	msgDeleteFailed = "Failed to delete book"
	msgStatsFailed  = "Failed to compute statistics"
)

// BookID accepts an id sent either as a JSON string or as a JSON number.
type BookID string

func (id *BookID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = BookID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*id = BookID(n.String())
	return nil
}

type CreateBookRequest struct {
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	Category entities.Category `json:"category"`
}

type UpdateStatusRequest struct {
	ID          BookID  `json:"id" binding:"required"`
	IsRead      *bool   `json:"isRead" binding:"required"`
	CompletedAt *string `json:"completedAt"`
}

type UpdateFieldsRequest struct {
	ID       BookID            `json:"id" binding:"required"`
	Title    string            `json:"title"`
	Author   string            `json:"author"`
	Category entities.Category `json:"category"`
}

type DeleteBookRequest struct {
	ID BookID `json:"id" binding:"required"`
}

type BooksController struct {
	store  store.BookStore
	logger *zap.Logger
}

func NewBooksController(s store.BookStore, logger *zap.Logger) *BooksController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BooksController{
		store:  s,
		logger: logger,
	}
}

// GetAllBooks lists books, optionally restricted to one category.
// GET /api/books?category=
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	records, err := bc.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, bc.logger, err, msgFetchFailed)
		return
	}
	c.JSON(http.StatusOK, entities.FilterByCategory(records, c.Query("category")))
}

// CreateBook adds an unread book.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book := entities.NewBook{Title: req.Title, Author: req.Author, Category: req.Category}
	if err := book.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	record, err := bc.store.Create(c.Request.Context(), book)
	if err != nil {
		respondInternalError(c, bc.logger, err, msgAddFailed)
		return
	}
	bc.logger.Debug("book added", zap.String("id", record.ID), zap.String("title", record.Title))
	c.JSON(http.StatusOK, record)
}

// UpdateBookStatus marks a book read or unread.
// PUT /api/books
func (bc *BooksController) UpdateBookStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// completedAt is ignored for unread books.
	var completedAt *string
	if *req.IsRead {
		parsed, err := entities.ParseCompletedAt(req.CompletedAt)
		if err != nil {
			respondValidationError(c, err)
			return
		}
		completedAt = parsed
	}

	record, err := bc.store.UpdateStatus(c.Request.Context(), string(req.ID), *req.IsRead, completedAt)
	if err != nil {
		respondStoreError(c, bc.logger, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateBookFields replaces a book's title, author and category.
// PATCH /api/books
func (bc *BooksController) UpdateBookFields(c *gin.Context) {
	var req UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	fields := entities.BookFields{Title: req.Title, Author: req.Author, Category: req.Category}
	if err := fields.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	record, err := bc.store.UpdateFields(c.Request.Context(), string(req.ID), fields)
	if err != nil {
		respondStoreError(c, bc.logger, err, msgUpdateFailed)
		return
	}
	c.JSON(http.StatusOK, record)
}

// DeleteBook removes a book.
// DELETE /api/books
func (bc *BooksController) DeleteBook(c *gin.Context) {
	var req DeleteBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := bc.store.Delete(c.Request.Context(), string(req.ID)); err != nil {
		respondStoreError(c, bc.logger, err, msgDeleteFailed)
		return
	}
	respondSuccess(c)
}

// GetBookStats aggregates the current collection.
// GET /api/books/stats
func (bc *BooksController) GetBookStats(c *gin.Context) {
	records, err := bc.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, bc.logger, err, msgStatsFailed)
		return
	}
	c.JSON(http.StatusOK, stats.Compute(records))
}
