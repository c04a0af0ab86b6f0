// Command token prints a bearer token for the guarded trivia endpoints.
//
//	JWT_SECRET=... go run ./cmd/token -sub content-editor -ttl 720h
//
// The token is signed with JWT_SECRET and JWT_ISSUER, exactly as the server
// will verify it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/trivia-api/internal/auth"
	"github.com/sakif/trivia-api/internal/config"
)

func main() {
	subject := flag.String("sub", "trivia-admin", "token subject (who the token is for)")
	ttl := flag.Duration("ttl", auth.DefaultTTL, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !cfg.AuthEnabled() {
		slog.Error("JWT_SECRET is not set; the server would not check tokens")
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	if err != nil {
		slog.Error("failed to create token service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	token, err := tokens.GenerateWithDuration(*subject, *ttl)
	if err != nil {
		slog.Error("failed to sign token", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(*ttl).Format(time.RFC3339))
	fmt.Println(token)
}
