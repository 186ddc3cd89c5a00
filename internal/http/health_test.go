package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serveHealth(t *testing.T, controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when store answers ping", func(t *testing.T) {
		controller := NewHealthController(setupSQLiteStore(t), "1.0.0", nil)

		w, response := serveHealth(t, controller)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["store"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports not configured when store is nil", func(t *testing.T) {
		controller := NewHealthController(nil, "1.0.0", nil)

		w, response := serveHealth(t, controller)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", response.Checks["store"])
	})

	t.Run("returns unhealthy when ping fails", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		controller := NewHealthController(pingerFunc(func(context.Context) error {
			return errors.New("dial tcp 10.0.0.5:5432: connection refused")
		}), "1.0.0", zap.New(core))

		w, response := serveHealth(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "unreachable", response.Checks["store"])
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.NotContains(t, w.Body.String(), "10.0.0.5")

		entries := logs.FilterMessage("store health check failed").All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
	})

	t.Run("returns unhealthy when database is closed", func(t *testing.T) {
		s := setupSQLiteStore(t)
		require.NoError(t, s.Close())

		w, _ := serveHealth(t, NewHealthController(s, "", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHealthResponse_OmitsEmptyVersion(t *testing.T) {
	jsonBytes, err := json.Marshal(HealthResponse{Status: "healthy", Checks: map[string]string{}})
	require.NoError(t, err)

	assert.NotContains(t, string(jsonBytes), "version")
}
