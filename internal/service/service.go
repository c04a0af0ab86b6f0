// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, applies the trivia rules, orchestrates
//	Repository (Data layer)  → reads/writes the store
//
// Services take repository interfaces, never a concrete store, so the same code
// runs against SQLite, PostgreSQL or the in-memory store. They return domain
// errors from package apperror and know nothing about HTTP status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/repository"
)

// CategoryService serves the category mapping.
type CategoryService struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(repo repository.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Map returns every category as an id → label mapping.
func (s *CategoryService) Map(ctx context.Context) (model.CategoryMap, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return model.NewCategoryMap(categories), nil
}
