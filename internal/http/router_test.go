package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRouter_Ping(t *testing.T) {
	router := NewRouter(RouterConfig{Store: setupFileStore(t)})

	w := doJSON(t, router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestNewRouter_SecurityHeaders(t *testing.T) {
	router := NewRouter(RouterConfig{Store: setupFileStore(t)})

	w := doJSON(t, router, http.MethodGet, "/api/books", "")

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestNewRouter_ReadOnly(t *testing.T) {
	router := NewRouter(RouterConfig{Store: setupFileStore(t), ReadOnly: true})

	w := doJSON(t, router, http.MethodPost, "/api/books", `{"title":"Dune","author":"Herbert","category":"`+sciFi+`"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Empty(t, listBooks(t, router, ""))

	w = doJSON(t, router, http.MethodGet, "/api/books/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
