package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Config locates a dataset snapshot file.
type Config struct {
	Path string
}

func DefaultConfig() Config {
	if p := os.Getenv("PELICULAS_DB_PATH"); p != "" {
		return Config{Path: p}
	}
	return Config{Path: filepath.Join("data", "peliculas.db")}
}

func EnsureDataDir(cfg Config) error {
	return os.MkdirAll(filepath.Dir(cfg.Path), 0o755)
}

// Open opens the snapshot for writing, creating the file and its directory
// when missing. Used by the import tool.
func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Snapshots stay in rollback-journal mode so OpenReadOnly never needs a
	// -shm file next to them.
	if _, err := db.Exec(`PRAGMA journal_mode = DELETE;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// OpenReadOnly opens an existing snapshot without creating anything on disk.
// A missing file is reported as os.ErrNotExist.
func OpenReadOnly(cfg Config) (*sql.DB, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", cfg.Path, err)
	}

	db, err := sql.Open("sqlite3", "file:"+cfg.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func MustOpen(cfg Config) *sql.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	return db
}
