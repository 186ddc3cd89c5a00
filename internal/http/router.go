package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/readonly"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	if cfg.ReadOnly {
		logger.Info("read-only mode enabled, mutating requests will be rejected")
	}
	router.Use(readonly.NewMiddleware(cfg.ReadOnly).Handler())

	health := NewHealthController(cfg.Store, cfg.Version, logger)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	booksController := NewBooksController(cfg.Store, logger)
	books := router.Group("/api/books")
	{
		books.GET("", booksController.GetAllBooks)
		books.POST("", booksController.CreateBook)
		books.PUT("", booksController.UpdateBookStatus)
		books.PATCH("", booksController.UpdateBookFields)
		books.DELETE("", booksController.DeleteBook)
		books.GET("/stats", booksController.GetBookStats)
	}

	return router
}
