package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type StoreBackend string

const (
	StoreBackendSQLite   StoreBackend = "sqlite"   // gorm + SQLite file (default)
	StoreBackendPostgres StoreBackend = "postgres" // pgx pool
	StoreBackendFile     StoreBackend = "file"     // single JSON document
)

const (
	DefaultDatabasePath  = "./bookshelf.db"
	DefaultBooksFilePath = "./books.json"
)

type (
	Config struct {
		HTTP
		Global
		Store
		Database
		Postgres
		BooksFile
		Logging
	}

	HTTP struct {
		Port     int32
		Host     string
		ReadOnly bool // Reject mutating requests with 403
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Store struct {
		Backend StoreBackend
	}
	Database struct {
		Path       string
		LogQueries bool
	}
	Postgres struct {
		DSN      string
		MaxConns int32
	}
	BooksFile struct {
		Path     string
		Envelope bool // Write {"books": [...]} instead of a bare array
	}
	Logging struct {
		Level       string
		Development bool
	}
)

// getPostgresDSN prefers POSTGRES_DSN and falls back to DATABASE_URL.
func getPostgresDSN(v *viper.Viper) string {
	if dsn := v.GetString("POSTGRES_DSN"); dsn != "" {
		return dsn
	}
	return v.GetString("DATABASE_URL")
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("read_only", false)
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("store_backend", string(StoreBackendSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_queries", false)
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("database_url", "")
	v.SetDefault("postgres_max_conns", 8)
	v.SetDefault("books_file_path", DefaultBooksFilePath)
	v.SetDefault("books_file_envelope", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)

	return &Config{
		HTTP: HTTP{
			Port:     v.GetInt32("PORT"),
			Host:     v.GetString("HOST"),
			ReadOnly: v.GetBool("READ_ONLY"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Store: Store{
			Backend: StoreBackend(v.GetString("STORE_BACKEND")),
		},
		Database: Database{
			Path:       v.GetString("DATABASE_PATH"),
			LogQueries: v.GetBool("DATABASE_LOG_QUERIES"),
		},
		Postgres: Postgres{
			DSN:      getPostgresDSN(v),
			MaxConns: v.GetInt32("POSTGRES_MAX_CONNS"),
		},
		BooksFile: BooksFile{
			Path:     v.GetString("BOOKS_FILE_PATH"),
			Envelope: v.GetBool("BOOKS_FILE_ENVELOPE"),
		},
		Logging: Logging{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
	}
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Global.ShutdownTimeoutInSeconds) * time.Second
}

// Validate checks that the selected backend is known and fully configured.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the %s backend", c.Store.Backend)
		}
	case StoreBackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the %s backend", c.Store.Backend)
		}
	case StoreBackendFile:
		if c.BooksFile.Path == "" {
			return fmt.Errorf("BOOKS_FILE_PATH is required for the %s backend", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (want sqlite, postgres or file)", c.Store.Backend)
	}
	return nil
}
