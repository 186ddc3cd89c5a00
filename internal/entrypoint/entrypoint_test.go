package entrypoint

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/filestore"
)

func testConfig(t *testing.T, backend config.StoreBackend) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		HTTP:      config.HTTP{Host: "127.0.0.1", Port: 0},
		Global:    config.Global{ShutdownTimeoutInSeconds: 1},
		Store:     config.Store{Backend: backend},
		Database:  config.Database{Path: filepath.Join(dir, "books.db")},
		BooksFile: config.BooksFile{Path: filepath.Join(dir, "books.json"), Envelope: true},
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	s, err := OpenStore(context.Background(), testConfig(t, config.StoreBackendSQLite), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &books.Repository{}, s)
	record, err := s.Create(context.Background(), entities.NewBook{Title: "Dune", Author: "Herbert", Category: entities.CategorySciFiFantasyHorror})
	require.NoError(t, err)
	assert.Equal(t, "1", record.ID)
}

func TestOpenStore_File(t *testing.T) {
	s, err := OpenStore(context.Background(), testConfig(t, config.StoreBackendFile), zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &filestore.Store{}, s)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestOpenStore_InvalidConfig(t *testing.T) {
	cfg := testConfig(t, "mongo")
	_, err := OpenStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)

	cfg = testConfig(t, config.StoreBackendPostgres)
	_, err = OpenStore(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "POSTGRES_DSN")
}

func TestServeListener_GracefulShutdown(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveListener(ctx, ln, handler, time.Second, zap.NewNop())
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
