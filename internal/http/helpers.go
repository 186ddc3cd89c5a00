package http

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/store"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse acknowledges an operation that returns no record.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondBindError sends a 400 describing why the request body could not be
// bound. Missing required fields are named by their JSON key; decode errors
// are passed through.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe.Field())
		if fe.Tag() == "required" {
			messages = append(messages, field+" is required")
			continue
		}
		messages = append(messages, field+" failed "+fe.Tag()+" validation")
	}
	respondBadRequest(c, strings.Join(messages, "; "))
}

// jsonFieldName turns a Go field name into its camelCase JSON key.
func jsonFieldName(name string) string {
	if strings.ToUpper(name) == name {
		return strings.ToLower(name)
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 response carrying only
// the fixed message.
func respondInternalError(c *gin.Context, logger *zap.Logger, err error, message string) {
	logger.Error(message,
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// respondValidationError sends a 400 carrying the validation message.
func respondValidationError(c *gin.Context, err error) {
	var verr *entities.ValidationError
	if errors.As(err, &verr) {
		respondBadRequest(c, verr.Error())
		return
	}
	respondBadRequest(c, err.Error())
}

// respondStoreError maps a store failure onto 404 or 500.
func respondStoreError(c *gin.Context, logger *zap.Logger, err error, message string) {
	if errors.Is(err, store.ErrNotFound) {
		respondNotFound(c, "Book")
		return
	}
	respondInternalError(c, logger, err, message)
}

// --- Success Response Helpers ---

// respondSuccess sends {"success": true}.
func respondSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
