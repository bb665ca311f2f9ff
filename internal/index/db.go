// Package index provides the SQLite-backed documentation search index and
// the detection audit log. It handles connection lifecycle, migrations, and
// the store implementation.
package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/ngsteer/internal/infrastructure/migrations"
	"github.com/zjrosen/ngsteer/internal/log"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB manages the SQLite connection for the documentation index.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens the index database, configures pragmas, and runs migrations.
// Creates the parent directory if it doesn't exist.
func NewDB(path string) (*DB, error) {
	log.Debug(log.CatDB, "opening index database", "path", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.ErrorErr(log.CatDB, "creating index directory", err, "path", dir)
		return nil, fmt.Errorf("creating index directory %s: %w", dir, err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("opening index database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("pinging index database: %w", err)
	}

	// WAL mode for concurrent reads while the MCP server reindexes.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if err := migrations.RunMigrations(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "running index migrations", err, "path", path)
		return nil, fmt.Errorf("running index migrations: %w", err)
	}

	return &DB{conn: conn, path: path}, nil
}

// NewMemoryDB opens an in-memory index database, mainly for tests.
func NewMemoryDB() (*DB, error) {
	conn, err := sql.Open("sqlite3", "file::memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory index: %w", err)
	}
	if err := migrations.RunMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("running index migrations: %w", err)
	}
	return &DB{conn: conn, path: ":memory:"}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	log.Debug(log.CatDB, "closing index database", "path", db.path)
	return db.conn.Close()
}

// Store returns the index store backed by this connection.
func (db *DB) Store() *Store {
	return &Store{db: db.conn}
}
