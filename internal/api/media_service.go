package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cinedex/internal/language"
	"cinedex/internal/logging"
	"cinedex/internal/media"
	"cinedex/internal/tmdb"
)

// MediaService implements /api/search-media on top of TMDB.
type MediaService struct {
	searcher        tmdb.Searcher
	mapper          *media.Mapper
	defaultLanguage string
	logger          *slog.Logger
}

// NewMediaService wires a searcher and mapper. A nil searcher yields a
// service whose searches fail with ErrMediaUnavailable.
func NewMediaService(searcher tmdb.Searcher, mapper *media.Mapper, defaultLanguage string, logger *slog.Logger) *MediaService {
	if mapper == nil {
		mapper = media.NewMapper(media.DefaultGenreTables(), "")
	}
	if strings.TrimSpace(defaultLanguage) == "" {
		defaultLanguage = "pt-BR"
	}
	return &MediaService{
		searcher:        searcher,
		mapper:          mapper,
		defaultLanguage: defaultLanguage,
		logger:          logging.NewComponentLogger(logger, "media"),
	}
}

// Available reports whether a searcher is configured.
func (s *MediaService) Available() bool {
	return s != nil && s.searcher != nil
}

// Search queries TMDB and maps movie and TV matches. An empty query returns
// an empty slice without calling upstream.
func (s *MediaService) Search(ctx context.Context, query, lang string) ([]media.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []media.Result{}, nil
	}
	logger := logging.WithContext(ctx, s.logger)
	if !s.Available() {
		logging.ErrorWithContext(logger, "media search requested without tmdb key", "media_search_unavailable",
			logging.String(logging.FieldErrorHint, "set TMDB_API_KEY or tmdb.api_key"),
		)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, ErrMediaUnavailable)
	}

	tag, ok := language.Normalize(lang, s.defaultLanguage)
	if !ok && strings.TrimSpace(lang) != "" {
		logger.Debug("invalid language tag, using default",
			logging.String("requested", lang),
			logging.String("language", tag))
	}

	resp, err := s.searcher.SearchMulti(ctx, query, tag)
	if err != nil {
		hint := "check network connectivity to TMDB"
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) && statusErr.Unauthorized() {
			hint = "verify TMDB_API_KEY"
		}
		logging.ErrorWithContext(logger, "tmdb search failed", "media_search_failed",
			logging.Error(err),
			logging.String("query", query),
			logging.String(logging.FieldErrorHint, hint),
		)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if resp == nil {
		return []media.Result{}, nil
	}
	results := s.mapper.MapAll(resp.Results)
	logger.Debug("media search completed",
		logging.String("query", query),
		logging.String("language", tag),
		logging.Int("upstream", len(resp.Results)),
		logging.Int("results", len(results)))
	return results, nil
}
