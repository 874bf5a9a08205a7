// Package server exposes the layout pipeline and board persistence over HTTP.
//
// The API is versioned under /v1 and speaks JSON. Layout computation is
// stateless: the server never holds canvas state between requests, it only
// re-derives positions from the board content it is given or has stored.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/corkboard-io/corkboard/pkg/classify"
	"github.com/corkboard-io/corkboard/pkg/pipeline"
	"github.com/corkboard-io/corkboard/pkg/store"
)

// Server wires the HTTP API to the pipeline runner and board store.
//
// The palette is scoped to the server's lifetime: once a label has been
// handed a color, every later request sees the same color, no matter which
// labels the request happens to combine. Palette is not safe for concurrent
// use, so all access goes through paletteMu.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger

	paletteMu sync.Mutex
	palette   *classify.Palette
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the board persistence backend. Without a store the board
// CRUD endpoints return 501.
func WithStore(s store.Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// WithPaletteColors overrides the color cycle used for label colors.
func WithPaletteColors(colors []string) Option {
	return func(srv *Server) { srv.palette = classify.NewPalette(colors...) }
}

// New creates a server around the given pipeline runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	srv := &Server{
		runner:  runner,
		logger:  log.Default(),
		palette: classify.NewPalette(),
	}
	for _, opt := range opts {
		opt(srv)
	}
	if srv.runner == nil {
		srv.runner = pipeline.NewRunner(nil, nil, srv.logger)
	}
	return srv
}

// assignColors hands out palette colors for labels, first-seen order held
// across requests. The returned map and palette snapshot are caller-owned.
func (s *Server) assignColors(labels []string) (map[string]string, *classify.Palette) {
	s.paletteMu.Lock()
	defer s.paletteMu.Unlock()

	colors := make(map[string]string, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		colors[l] = s.palette.ColorFor(l)
	}
	return colors, s.palette.Clone()
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/layout", s.handleLayout)
		r.Get("/colors", s.handleColors)

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Post("/", s.handleCreateBoard)
			r.Route("/{boardID}", func(r chi.Router) {
				r.Get("/", s.handleGetBoard)
				r.Put("/", s.handlePutBoard)
				r.Delete("/", s.handleDeleteBoard)
				r.Post("/layout", s.handleBoardLayout)
			})
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
