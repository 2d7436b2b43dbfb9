package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"seasonalDashboard/internal/finance"
	"seasonalDashboard/internal/logger"
)

// Config holds server dependencies.
type Config struct {
	Log             zerolog.Logger
	Dashboard       *finance.Dashboard
	Charts          *finance.Charts
	Metrics         *Metrics
	Locale          string
	Addr            string
	ShutdownTimeout time.Duration
	// Webhook receives Telegram updates; nil leaves the route unregistered.
	Webhook http.Handler
}

// Server is the HTTP front-end of the dashboard.
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	dashboard *finance.Dashboard
	charts    *finance.Charts
	metrics   *Metrics
	locale    string
	page      *page
	shutdown  time.Duration
}

// New creates the server and its routes.
func New(cfg Config) *Server {
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		router:    chi.NewRouter(),
		log:       logger.Component(cfg.Log, "server"),
		dashboard: cfg.Dashboard,
		charts:    cfg.Charts,
		metrics:   cfg.Metrics,
		locale:    cfg.Locale,
		page:      newPage(),
		shutdown:  cfg.ShutdownTimeout,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.Webhook)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes(webhook http.Handler) {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/months", s.handleMonths)
		r.Get("/assets", s.handleAssets)
		r.Route("/assets/{asset}", func(r chi.Router) {
			r.Get("/years", s.handleYears)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/charts/{kind}.png", s.handleChart)
			r.Get("/export.xlsx", s.handleExport)
		})
	})

	if webhook != nil {
		s.router.Method(http.MethodPost, "/telegram/webhook", webhook)
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.metrics.observeRequest(route, ww.Status(), elapsed)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", elapsed).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.server.Addr).Msg("http: listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	s.log.Info().Msg("http: shutting down")
	return s.server.Shutdown(shutdownCtx)
}
