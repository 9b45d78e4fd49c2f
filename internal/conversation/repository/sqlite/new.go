package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"multi-agent-chat/internal/conversation/repository"
	"multi-agent-chat/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New opens (or creates) the database at path, runs migrations and returns a
// Repository. Use ":memory:" for an in-memory database (useful for tests).
func New(ctx context.Context, path string, l log.Logger) (repository.Repository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// One connection: keeps ":memory:" a single database and serialises the
	// seq allocation in AppendTurn.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	r := &implRepository{db: db, l: l}
	if err := r.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	l.Infof(ctx, "internal.conversation.repository.sqlite: database opened at %s", path)
	return r, nil
}

// Close implements repository.Repository.
func (r *implRepository) Close() error {
	return r.db.Close()
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("internal.conversation.repository.sqlite.%s", method)
}
