package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"cinedex/internal/api"
	"cinedex/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Options configures the HTTP surface.
type Options struct {
	Productions *api.ProductionService
	Media       *api.MediaService
	Status      StatusFunc
	CORSOrigins []string
	// StaticDir, when set, is served at / for a browser front end.
	StaticDir string
	Logger    *slog.Logger
}

// NewHandler builds the full middleware chain around the API routes.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Productions == nil {
		return nil, errors.New("server: production service is required")
	}
	logger := logging.NewComponentLogger(opts.Logger, "http")
	media := opts.Media
	if media == nil {
		media = api.NewMediaService(nil, nil, "", opts.Logger)
	}

	h := &handlers{
		productions: opts.Productions,
		media:       media,
		status:      opts.Status,
		logger:      logger,
	}
	mux := http.NewServeMux()
	h.register(mux)

	if dir := strings.TrimSpace(opts.StaticDir); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("server: static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("server: static dir %q is not a directory", dir)
		}
		mux.Handle("/", staticOnly(http.FileServer(http.Dir(dir))))
	}

	var handler http.Handler = mux
	handler = withAccessLog(logger, handler)
	handler = withCORS(opts.CORSOrigins, handler)
	handler = withRequestID(handler)
	return handler, nil
}

// staticOnly limits the front end to reads. The catch-all carries no method so
// it does not conflict with the method-less /api/ fallback.
func staticOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Server owns the listener and http.Server lifecycle.
type Server struct {
	addr     string
	logger   *slog.Logger
	server   *http.Server
	listener net.Listener
}

// New wraps handler in an http.Server bound to addr.
func New(addr string, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		addr:   addr,
		logger: logging.NewComponentLogger(logger, "http"),
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Start listens and serves in the background until ctx is cancelled or Stop
// is called.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "http server error", "http_serve_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "restart cinedexd"),
			)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("http server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop drains in-flight requests for up to five seconds.
func (s *Server) Stop() {
	if s == nil || s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http shutdown incomplete", logging.Error(err))
	}
}
