package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"cinedex/internal/api"
	"cinedex/internal/config"
	"cinedex/internal/logging"
	"cinedex/internal/media"
	"cinedex/internal/server"
	"cinedex/internal/store"
	"cinedex/internal/tmdb"
)

// Daemon coordinates the store and HTTP server and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   store.Store
	media   *api.MediaService
	server  *server.Server
	version string

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time
	cancel    context.CancelFunc
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithVersion sets the version reported by /api/status.
func WithVersion(version string) Option {
	return func(d *Daemon) {
		if version != "" {
			d.version = version
		}
	}
}

// WithMediaSearcher replaces the TMDB client, mainly for tests.
func WithMediaSearcher(searcher tmdb.Searcher) Option {
	return func(d *Daemon) {
		if searcher == nil {
			return
		}
		d.media = api.NewMediaService(searcher, d.newMapper(), d.cfg.TMDB.Language, d.logger)
	}
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, st store.Store, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil || st == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	d := &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    st,
		version:  "dev",
		lockPath: cfg.LockPath(),
		lock:     flock.New(cfg.LockPath()),
	}
	d.media = buildMediaService(cfg, d.newMapper(), logger)
	for _, opt := range opts {
		opt(d)
	}

	handler, err := server.NewHandler(server.Options{
		Productions: api.NewProductionService(st, logger),
		Media:       d.media,
		Status:      d.Status,
		CORSOrigins: cfg.Server.CORSOrigins,
		StaticDir:   cfg.Server.StaticDir,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	d.server = server.New(cfg.ListenAddress(), handler, logger)
	return d, nil
}

func (d *Daemon) newMapper() *media.Mapper {
	tables, err := media.LoadGenreTables(d.cfg.TMDB.GenresPath)
	if err != nil {
		logging.WarnWithContext(d.logger, "failed to load genre tables", "genre_tables_load_failed",
			logging.Error(err),
			logging.String("path", d.cfg.TMDB.GenresPath),
			logging.String(logging.FieldErrorHint, "fix the YAML file or remove tmdb.genres_path"),
			logging.String(logging.FieldImpact, "built-in genre names are used"),
		)
		tables = media.DefaultGenreTables()
	}
	return media.NewMapper(tables, d.cfg.TMDB.ImageBaseURL)
}

func buildMediaService(cfg *config.Config, mapper *media.Mapper, logger *slog.Logger) *api.MediaService {
	if !cfg.HasTMDBKey() {
		logging.WarnWithContext(logging.NewComponentLogger(logger, "daemon"), "tmdb api key not configured", "tmdb_key_missing",
			logging.String(logging.FieldErrorHint, "set TMDB_API_KEY or tmdb.api_key"),
			logging.String(logging.FieldImpact, "media search returns errors; catalog endpoints still work"),
		)
		return api.NewMediaService(nil, mapper, cfg.TMDB.Language, logger)
	}
	client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithTimeout(time.Duration(cfg.TMDB.TimeoutSeconds)*time.Second),
		tmdb.WithRateLimit(cfg.TMDB.RequestsPerSecond, cfg.TMDB.Burst),
	)
	if err != nil {
		logging.WarnWithContext(logging.NewComponentLogger(logger, "daemon"), "failed to create tmdb client", "tmdb_client_failed",
			logging.Error(err),
			logging.String("base_url", cfg.TMDB.BaseURL),
			logging.String(logging.FieldErrorHint, "check tmdb.base_url and tmdb.api_key"),
			logging.String(logging.FieldImpact, "media search returns errors; catalog endpoints still work"),
		)
		return api.NewMediaService(nil, mapper, cfg.TMDB.Language, logger)
	}
	return api.NewMediaService(client, mapper, cfg.TMDB.Language, logger)
}

// Start acquires the daemon lock and starts serving HTTP.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another cinedexd instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.server.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start http server: %w", err)
	}
	d.cancel = cancel
	d.startedAt = time.Now().UTC()
	d.running.Store(true)
	d.logger.Info("cinedexd started",
		logging.String("address", d.server.Addr()),
		logging.String("backend", d.cfg.Storage.Backend),
		logging.String("data", d.cfg.Storage.Path),
		logging.Bool("media_search", d.media.Available()),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop drains the HTTP server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("cinedexd stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Addr returns the bound listener address.
func (d *Daemon) Addr() string {
	return d.server.Addr()
}

// Running reports whether Start succeeded and Stop has not run.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Status reports runtime information for /api/status.
func (d *Daemon) Status(ctx context.Context) (api.Status, error) {
	count, err := d.store.Count(ctx)
	if err != nil {
		return api.Status{}, err
	}
	return api.Status{
		Backend:   d.cfg.Storage.Backend,
		DataPath:  d.cfg.Storage.Path,
		Count:     count,
		StartedAt: d.startedAt,
		Version:   d.version,
		Media:     d.media.Available(),
	}, nil
}
