package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bekzodart/storefront/internal/store"
)

// Storage is the durable client-side state database backed by SQLite.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

type membershipRepository struct {
	storage *Storage
}

// New opens or creates the state database and initializes its schema. A
// state file SQLite cannot read is discarded and recreated empty: local
// state is a cache of user intent, not a system of record.
func New(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	storage, err := open(ctx, path, logger)
	if err == nil {
		return storage, nil
	}

	logger.Warn("state db unreadable, recreating empty",
		slog.String("path", path), slog.String("error", err.Error()))
	if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
		return nil, fmt.Errorf("discard corrupt state db: %w", rmErr)
	}
	return open(ctx, path, logger)
}

func open(ctx context.Context, path string, logger *slog.Logger) (*Storage, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	storage := &Storage{db: db, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases the database handle.
func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Memberships returns the repository persisting cart/favorites sets.
func (s *Storage) Memberships() store.Repository {
	return &membershipRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS memberships (
            store TEXT NOT NULL,
            artwork_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            PRIMARY KEY (store, artwork_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_memberships_store ON memberships(store, position)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Load returns the named set ordered by position. Scan failures degrade to
// an empty set: a corrupt state file must never take the storefront down.
func (r *membershipRepository) Load(ctx context.Context, name string) ([]string, error) {
	rows, err := r.storage.db.QueryxContext(ctx,
		`SELECT artwork_id FROM memberships WHERE store = ? ORDER BY position`, name)
	if err != nil {
		r.storage.logger.Warn("membership query failed, treating as empty",
			slog.String("store", name), slog.String("error", err.Error()))
		return nil, nil
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			r.storage.logger.Warn("membership row corrupt, treating set as empty",
				slog.String("store", name), slog.String("error", err.Error()))
			return nil, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		r.storage.logger.Warn("membership read interrupted, treating set as empty",
			slog.String("store", name), slog.String("error", err.Error()))
		return nil, nil
	}
	return ids, nil
}

// Save replaces the named set transactionally with the full membership.
func (r *membershipRepository) Save(ctx context.Context, name string, ids []string) error {
	tx, err := r.storage.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memberships WHERE store = ?`, name); err != nil {
		return fmt.Errorf("clear set: %w", err)
	}

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO memberships (store, artwork_id, position) VALUES (?, ?, ?)`,
			name, id, i); err != nil {
			return fmt.Errorf("insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
