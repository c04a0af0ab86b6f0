// Command migrate applies, rolls back or reports the store schema migrations.
//
//	go run ./cmd/migrate -command up
//	go run ./cmd/migrate -command down
//	go run ./cmd/migrate -command status
//
// It reads the same DB_DRIVER, DB_PATH and DATABASE_URL as the server. The
// memory driver has no schema and is rejected.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/sakif/trivia-api/internal/config"
	"github.com/sakif/trivia-api/internal/repository/postgres"
	sqliteRepo "github.com/sakif/trivia-api/internal/repository/sqlite"
)

// migrator is implemented by the SQL stores.
type migrator interface {
	Provider() (*goose.Provider, error)
	Close() error
}

func main() {
	command := flag.String("command", "up", "migration command: up, down or status")
	timeout := flag.Duration("timeout", time.Minute, "give up after this long")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, *command, logger); err != nil {
		logger.Error("migration failed", slog.String("command", *command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	db, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.Provider()
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := p.Up(ctx)
		for _, r := range results {
			logger.Info("applied", slog.String("migration", r.Source.Path), slog.Duration("duration", r.Duration))
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			logger.Info("schema already up to date")
		}
	case "down":
		r, err := p.Down(ctx)
		if err != nil {
			return err
		}
		if r != nil {
			logger.Info("rolled back", slog.String("migration", r.Source.Path))
		}
	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			fmt.Printf("%-8s %s\n", s.State, filepath.Base(s.Source.Path))
		}
	default:
		return fmt.Errorf("unknown command %q (want up, down or status)", command)
	}
	return nil
}

// open connects to the configured SQL store without migrating it.
func open(ctx context.Context, cfg *config.Config) (migrator, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		db, err := sqliteRepo.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Store.DatabaseURL, cfg.Store.MaxConns)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("driver %q has no migrations", cfg.Store.Driver)
	}
}
