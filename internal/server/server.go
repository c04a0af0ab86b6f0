// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It decides:
// - Which store backs the API (sqlite, postgres or memory)
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → OpenStore → repository.Store
//	Store → QuestionService / CategoryService / QuizService
//	Services → QuestionHandler / CategoryHandler / QuizHandler → routes
//
// This is the "composition root": every dependency is assembled here, once.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/trivia-api/internal/auth"
	"github.com/sakif/trivia-api/internal/config"
	"github.com/sakif/trivia-api/internal/handler"
	"github.com/sakif/trivia-api/internal/middleware"
	"github.com/sakif/trivia-api/internal/repository"
	"github.com/sakif/trivia-api/internal/repository/memory"
	"github.com/sakif/trivia-api/internal/repository/postgres"
	sqliteRepo "github.com/sakif/trivia-api/internal/repository/sqlite"
	"github.com/sakif/trivia-api/internal/service"
	"github.com/sakif/trivia-api/internal/trivia"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. It is closed when Serve returns (or by Close when
// the server is only used as an http.Handler, as in tests).
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  repository.Store

	// pick overrides the quiz's random choice; nil means trivia.RandomPicker.
	pick trivia.Picker
}

// Option customises a Server built by NewWithStore.
type Option func(*Server)

// WithPicker replaces the quiz's random question choice. Tests use it to make
// quiz answers deterministic.
func WithPicker(pick trivia.Picker) Option {
	return func(s *Server) { s.pick = pick }
}

// OpenStore opens the store selected by cfg.Store.Driver and brings its schema
// up to date.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		// os.MkdirAll creates the data directory if needed (like `mkdir -p`).
		if cfg.Store.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqliteRepo.New(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.Store.DatabaseURL, cfg.Store.MaxConns)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// New opens the configured store and builds a Server around it.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s, err := NewWithStore(cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// NewWithStore builds a Server around an already open store. The Server takes
// ownership of store.
func NewWithStore(cfg *config.Config, store repository.Store, logger *slog.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /categories                          → category mapping
// GET    /questions?page=N                    → one page of questions
// POST   /questions                           → create question    (guarded)
// DELETE /questions/{id}                      → delete question    (guarded)
// POST   /questions/search                    → search by text
// POST   /categories/{category_id}/questions  → questions in a category (GET too)
// POST   /quizzes                             → next quiz question
// GET    /healthz                             → store ping
// GET    /metrics                             → Prometheus exposition
//
// "Guarded" routes need a bearer token only when JWT_SECRET is configured.
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns an id that every later log line carries
// 2. RealIP: extracts the client IP from proxy headers
// 3. CORS: headers go on before anything can fail
// 4. Logger and metrics: observe the final status
// 5. Recoverer: innermost, so a panic still passes through 2-4 as a 500
func (s *Server) setupRoutes() error {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.CORS)
	s.router.Use(middleware.Logger(s.logger))

	// Each Server gets its own registry so test servers never collide.
	var reg *prometheus.Registry
	if s.config.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.router.Use(middleware.NewMetrics(reg).Handler)
	}

	s.router.Use(middleware.Recoverer(s.logger))

	// Unknown routes and wrong methods get the same JSON envelope as handler errors.
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteStatus(w, http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteStatus(w, http.StatusMethodNotAllowed)
	})

	guard, err := s.mutationGuard()
	if err != nil {
		return err
	}

	// DEPENDENCY CHAIN:
	//   s.store implements repository.Store
	//   services receive the repository interfaces
	//   handlers receive the services
	questionService := service.NewQuestionService(s.store, s.store, service.QuestionOptions{
		PageSize:            s.config.Trivia.QuestionsPerPage,
		AllowZeroDifficulty: s.config.Trivia.AllowZeroDifficulty,
	}, s.logger)
	categoryService := service.NewCategoryService(s.store, s.logger)
	quizService := service.NewQuizService(s.store, s.pick, s.logger)

	questionHandler := handler.NewQuestionHandler(questionService, s.logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, questionService, s.logger)
	quizHandler := handler.NewQuizHandler(quizService, s.logger)

	s.router.Get("/healthz", s.handleHealth)
	if reg != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	s.router.Get("/categories", categoryHandler.HandleList)
	s.router.Post("/categories/{category_id}/questions", categoryHandler.HandleQuestions)
	s.router.Get("/categories/{category_id}/questions", categoryHandler.HandleQuestions)

	s.router.Get("/questions", questionHandler.HandleList)
	s.router.Post("/questions/search", questionHandler.HandleSearch)
	s.router.With(guard).Post("/questions", questionHandler.HandleCreate)
	s.router.With(guard).Delete("/questions/{id}", questionHandler.HandleDelete)

	s.router.Post("/quizzes", quizHandler.HandleNext)

	return nil
}

// mutationGuard returns the middleware for routes that change data: bearer
// token checking when a secret is configured, a pass-through otherwise.
func (s *Server) mutationGuard() (func(http.Handler) http.Handler, error) {
	if !s.config.AuthEnabled() {
		return func(next http.Handler) http.Handler { return next }, nil
	}

	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret, s.config.Auth.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}
	s.logger.Info("bearer token required for mutating routes")
	requireBearer := auth.RequireBearer(tokens, s.logger)
	return func(next http.Handler) http.Handler {
		return requireBearer(s.auditMutation(next))
	}, nil
}

// auditMutation records which token subject changed data.
func (s *Server) auditMutation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ := auth.SubjectFromContext(r.Context())
		s.logger.Info("mutation authorised",
			slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
			slog.String("subject", subject),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

type healthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Store   string `json:"store"`
}

// handleHealth reports whether the store answers a ping within two seconds.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		handler.WriteStatus(w, http.StatusInternalServerError)
		return
	}
	handler.WriteJSON(w, http.StatusOK, healthResponse{Success: true, Status: "ok", Store: s.config.Store.Driver})
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// Start listens on the configured port and serves until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		s.store.Close()
		return fmt.Errorf("listening on port %d: %w", s.config.Port, err)
	}

	s.logger.Info("server starting",
		slog.Int("port", s.config.Port),
		slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		slog.String("store", s.config.Store.Driver),
		slog.String("env", s.config.Env),
	)
	return s.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is cancelled, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait up to SHUTDOWN_TIMEOUT for in-flight requests to finish
// 3. Close the store (flushes the SQLite WAL, drains the pgx pool)
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.store.Close()

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		<-serverErrors
		s.logger.Info("server stopped gracefully")
		return nil
	}
}
