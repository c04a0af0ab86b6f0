// Package main is the entry point for the trivia API server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to:
// 1. Read configuration (from env vars and an optional .env file)
// 2. Create dependencies (logger, store)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
//
// WHY cmd/server/?
// The cmd/ directory is the Go convention for executable entry points. This
// project has three: cmd/server, cmd/migrate and cmd/token.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/sakif/trivia-api/internal/config"
	"github.com/sakif/trivia-api/internal/server"
)

func main() {
	// === 1. LOAD .env ===
	// A missing .env is normal (containers, CI); any other failure is reported.
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("could not load .env file", slog.String("error", err.Error()))
		}
	}

	// === 2. READ CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 3. SET UP LOGGING ===
	// LOG_LEVEL picks the minimum level, LOG_FORMAT picks text (local) or json (production).
	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if !cfg.AuthEnabled() {
		logger.Warn("JWT_SECRET not set; POST /questions and DELETE /questions/{id} are unguarded")
	}

	// === 4. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
