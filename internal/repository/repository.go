// Package repository declares the Store Access Layer.
//
// Three implementations live in sub-packages: sqlite (the default), postgres and
// memory. Services only ever see the interfaces below, so the backing store is
// chosen once in server.New from configuration.
package repository

import (
	"context"

	"github.com/sakif/trivia-api/internal/model"
)

// QuestionRepository stores questions in insertion (ascending id) order.
//
// GetQuestion and DeleteQuestion return an error wrapping apperror.ErrNotFound
// when no question has the given id.
type QuestionRepository interface {
	CreateQuestion(ctx context.Context, q *model.Question) error
	ListQuestions(ctx context.Context) ([]model.Question, error)
	GetQuestion(ctx context.Context, id int64) (*model.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error
	ListQuestionsByCategory(ctx context.Context, category string) ([]model.Question, error)
}

// CategoryRepository stores categories. There is no HTTP surface for creating
// categories; CreateCategory exists for seeding and tests.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, c *model.Category) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// Store is everything the server needs from a backing store.
type Store interface {
	QuestionRepository
	CategoryRepository
	Ping(ctx context.Context) error
	Close() error
}
