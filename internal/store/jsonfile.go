package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"cinedex/internal/logging"
	"cinedex/internal/production"
)

// JSONStore keeps the full record set in memory and mirrors it to a JSON file.
type JSONStore struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu      sync.RWMutex
	records []production.Production
	lastID  int64
}

// OpenJSON loads path into memory. A missing file starts an empty catalog; an
// unreadable or corrupt file is logged and also starts empty.
func OpenJSON(path string, logger *slog.Logger) (*JSONStore, error) {
	if path == "" {
		return nil, errors.New("store: json path is required")
	}
	logger = logging.NewComponentLogger(logger, "store")

	s := &JSONStore{
		path:    path,
		lock:    flock.New(path + ".lock"),
		logger:  logger,
		records: []production.Production{},
	}

	records, err := LoadFile(path)
	if err != nil {
		logging.WarnWithContext(logger, "failed to load productions file", "store_load_failed",
			logging.Error(err),
			logging.String("path", path),
			logging.String(logging.FieldErrorHint, "check the file is valid JSON; it will be overwritten on the next change"),
			logging.String(logging.FieldImpact, "catalog starts empty"),
		)
		records = nil
	}
	for _, p := range records {
		s.records = append(s.records, p)
		if p.ID > s.lastID {
			s.lastID = p.ID
		}
	}

	logger.Debug("loaded productions",
		logging.Int("count", len(s.records)),
		logging.Int64("last_id", s.lastID),
		logging.String("path", path))
	return s, nil
}

// Path returns the backing file.
func (s *JSONStore) Path() string { return s.path }

// List returns copies of every record in insertion order.
func (s *JSONStore) List(context.Context) ([]production.Production, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.records), nil
}

// Get returns the record with id.
func (s *JSONStore) Get(_ context.Context, id int64) (production.Production, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return production.Production{}, ErrNotFound
	}
	return s.records[idx].Clone(), nil
}

// Insert assigns the next id, appends and persists.
func (s *JSONStore) Insert(_ context.Context, p production.Production) (production.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	stored := p.Clone()
	stored.ID = s.lastID
	s.records = append(s.records, stored)
	s.persist("insert", stored.ID)
	return stored.Clone(), nil
}

// Update shallow-merges patch over the record with id.
func (s *JSONStore) Update(_ context.Context, id int64, patch production.Patch) (production.Production, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return production.Production{}, ErrNotFound
	}
	s.records[idx] = s.records[idx].Merge(patch)
	s.persist("update", id)
	return s.records[idx].Clone(), nil
}

// Delete removes the record with id.
func (s *JSONStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	s.persist("delete", id)
	return nil
}

// Search filters and paginates the in-memory set.
func (s *JSONStore) Search(_ context.Context, filter production.Filter) (production.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page := filter.Apply(s.records)
	page.Productions = cloneAll(page.Productions)
	return page, nil
}

// Count returns the number of stored records.
func (s *JSONStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// Close releases the file lock if held.
func (s *JSONStore) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Close()
}

func (s *JSONStore) indexOf(id int64) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

// persist rewrites the file under the advisory lock. Callers hold s.mu.
func (s *JSONStore) persist(op string, id int64) {
	if err := s.writeLocked(); err != nil {
		logging.ErrorWithContext(s.logger, "failed to save productions file", "store_save_failed",
			logging.Error(err),
			logging.String("operation", op),
			logging.Int64(logging.FieldProductionID, id),
			logging.String("path", s.path),
			logging.String(logging.FieldErrorHint, "check disk space and permissions on the data directory"),
			logging.String(logging.FieldImpact, "change is kept in memory but will be lost on restart"),
		)
		return
	}
	s.logger.Debug("saved productions",
		logging.String("operation", op),
		logging.Int64(logging.FieldProductionID, id),
		logging.Int("count", len(s.records)))
}

func (s *JSONStore) writeLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return WriteFile(s.path, s.records)
}

// LoadFile reads a JSON array of productions. A missing or empty file yields
// an empty slice.
func LoadFile(path string) ([]production.Production, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []production.Production{}, nil
		}
		return nil, fmt.Errorf("read productions file: %w", err)
	}
	if len(data) == 0 {
		return []production.Production{}, nil
	}
	var records []production.Production
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse productions file: %w", err)
	}
	if records == nil {
		records = []production.Production{}
	}
	return records, nil
}

// WriteFile replaces path with records as an indented JSON array, via a temp
// file and rename.
func WriteFile(path string, records []production.Production) error {
	if records == nil {
		records = []production.Production{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal productions: %w", err)
	}
	data = append(data, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func cloneAll(records []production.Production) []production.Production {
	out := make([]production.Production, len(records))
	for i, p := range records {
		out[i] = p.Clone()
	}
	return out
}
