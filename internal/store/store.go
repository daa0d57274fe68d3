package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cinedex/internal/config"
	"cinedex/internal/production"
)

// ErrNotFound is returned when no production has the requested id.
var ErrNotFound = errors.New("production not found")

// Store is the persistence contract shared by all backends.
type Store interface {
	List(ctx context.Context) ([]production.Production, error)
	Get(ctx context.Context, id int64) (production.Production, error)
	Insert(ctx context.Context, p production.Production) (production.Production, error)
	Update(ctx context.Context, id int64, patch production.Patch) (production.Production, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter production.Filter) (production.Page, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// Open selects the backend named by cfg.Storage.Backend.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("store: config is required")
	}
	switch cfg.Storage.Backend {
	case config.BackendJSON, "":
		s, err := OpenJSON(cfg.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("store: unsupported backend %q", cfg.Storage.Backend)
	}
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
