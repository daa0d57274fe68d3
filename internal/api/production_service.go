package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"cinedex/internal/logging"
	"cinedex/internal/production"
)

// ProductionStore abstracts the persistence operations the API needs.
type ProductionStore interface {
	List(ctx context.Context) ([]production.Production, error)
	Insert(ctx context.Context, p production.Production) (production.Production, error)
	Update(ctx context.Context, id int64, patch production.Patch) (production.Production, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter production.Filter) (production.Page, error)
	Count(ctx context.Context) (int, error)
}

// ProductionService implements the catalog operations behind /api/productions.
type ProductionService struct {
	store  ProductionStore
	logger *slog.Logger
}

// NewProductionService constructs a ProductionService around the provided store.
func NewProductionService(store ProductionStore, logger *slog.Logger) *ProductionService {
	if store == nil {
		return nil
	}
	return &ProductionService{store: store, logger: logging.NewComponentLogger(logger, "productions")}
}

// ListAll returns every record; never nil.
func (s *ProductionService) ListAll(ctx context.Context) ([]production.Production, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []production.Production{}
	}
	return list, nil
}

// Search filters and paginates the catalog.
func (s *ProductionService) Search(ctx context.Context, filter production.Filter) (production.Page, error) {
	return s.store.Search(ctx, filter.Normalized())
}

// Create decodes body and stores it under a fresh id.
func (s *ProductionService) Create(ctx context.Context, body []byte) (production.Production, error) {
	var p production.Production
	if err := json.Unmarshal(body, &p); err != nil {
		return production.Production{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	created, err := s.store.Insert(ctx, p)
	if err != nil {
		return production.Production{}, err
	}
	logging.WithContext(ctx, s.logger).Info("production created",
		logging.Int64(logging.FieldProductionID, created.ID),
		logging.String("title", created.Title))
	return created, nil
}

// Update shallow-merges body over the record with id.
func (s *ProductionService) Update(ctx context.Context, id int64, body []byte) (production.Production, error) {
	patch, err := production.DecodePatch(body)
	if err != nil {
		return production.Production{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return production.Production{}, err
	}
	logging.WithContext(ctx, s.logger).Info("production updated",
		logging.Int64(logging.FieldProductionID, id),
		logging.String("fields", strings.Join(patch.Fields(), ",")))
	return updated, nil
}

// Delete removes the record with id.
func (s *ProductionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx, s.logger).Info("production deleted", logging.Int64(logging.FieldProductionID, id))
	return nil
}

// Count returns the catalog size.
func (s *ProductionService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// ParseID parses a path identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", ErrInvalidInput, raw)
	}
	return id, nil
}

// ParseFilter reads query, type, page and limit. Non-numeric paging values
// fall back to the defaults.
func ParseFilter(query, mediaType, page, limit string) production.Filter {
	f := production.Filter{Query: query, Type: mediaType}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil {
		f.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil {
		f.Limit = n
	}
	return f.Normalized()
}
