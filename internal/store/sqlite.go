package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"cinedex/internal/logging"
	"cinedex/internal/production"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible build.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// SQLiteStore persists productions as JSON documents in a SQLite table.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger

	// mu serializes inserts so the id counter and the row land together.
	mu     sync.Mutex
	lastID int64
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &SQLiteStore{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "store"),
	}
	ctx := context.Background()
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM productions").Scan(&s.lastID); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("read last id: %w", err)
	}
	s.logger.Debug("opened sqlite store",
		logging.String("path", path),
		logging.Int64("last_id", s.lastID))
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin schema tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return tx.Commit()
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// List returns every record in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]production.Production, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT id, body FROM productions ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()

	out := []production.Production{}
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate productions: %w", err)
	}
	return out, nil
}

// Get returns the record with id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (production.Production, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT id, body FROM productions WHERE id = ?", id)
	p, err := scanProduction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return production.Production{}, ErrNotFound
	}
	return p, err
}

// Insert assigns the next id and stores the record.
func (s *SQLiteStore) Insert(ctx context.Context, p production.Production) (production.Production, error) {
	ctx = ensureContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p.Clone()
	stored.ID = s.lastID + 1
	body, err := json.Marshal(stored)
	if err != nil {
		return production.Production{}, fmt.Errorf("encode production: %w", err)
	}
	if err := s.execWithRetry(ctx,
		"INSERT INTO productions (id, position, body) VALUES (?, ?, ?)",
		stored.ID, stored.ID, string(body),
	); err != nil {
		return production.Production{}, fmt.Errorf("insert production: %w", err)
	}
	s.lastID = stored.ID
	return stored, nil
}

// Update shallow-merges patch inside a transaction.
func (s *SQLiteStore) Update(ctx context.Context, id int64, patch production.Patch) (production.Production, error) {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return production.Production{}, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := scanProduction(tx.QueryRowContext(ctx, "SELECT id, body FROM productions WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return production.Production{}, ErrNotFound
	}
	if err != nil {
		return production.Production{}, err
	}

	merged := current.Merge(patch)
	body, err := json.Marshal(merged)
	if err != nil {
		return production.Production{}, fmt.Errorf("encode production: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE productions SET body = ? WHERE id = ?", string(body), id); err != nil {
		return production.Production{}, fmt.Errorf("update production: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return production.Production{}, fmt.Errorf("commit update: %w", err)
	}
	return merged, nil
}

// Delete removes the record with id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM productions WHERE id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete production: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Search loads the set and applies the shared filter, so matching rules are
// identical across backends.
func (s *SQLiteStore) Search(ctx context.Context, filter production.Filter) (production.Page, error) {
	all, err := s.List(ctx)
	if err != nil {
		return production.Page{}, err
	}
	return filter.Apply(all), nil
}

// Count returns the number of rows.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM productions").Scan(&count); err != nil {
		return 0, fmt.Errorf("count productions: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduction(row rowScanner) (production.Production, error) {
	var (
		id   int64
		body string
	)
	if err := row.Scan(&id, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return production.Production{}, err
		}
		return production.Production{}, fmt.Errorf("scan production: %w", err)
	}
	var p production.Production
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return production.Production{}, fmt.Errorf("decode production %d: %w", id, err)
	}
	p.ID = id
	return p, nil
}

func (s *SQLiteStore) execWithRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
