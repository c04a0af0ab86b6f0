// Package memory is an in-process implementation of repository.Store.
//
// Data lives in a slice guarded by a RWMutex and disappears with the process.
// It is selected with DB_DRIVER=memory and is what the service and handler tests
// run against, since it needs neither a file nor a server.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// DefaultCategories mirrors the categories seeded by the SQL migrations.
var DefaultCategories = []model.Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// Store keeps questions and categories in memory.
type Store struct {
	mu             sync.RWMutex
	questions      []model.Question
	categories     []model.Category
	nextQuestionID int64
	nextCategoryID int64

	// failWith, when set, is returned by every operation. Tests use it to
	// simulate a store fault.
	failWith error
}

// New returns an empty store seeded with categories. Passing no categories
// seeds DefaultCategories; pass an empty, non-nil slice for none at all.
func New(categories ...model.Category) *Store {
	if categories == nil {
		categories = DefaultCategories
	}
	s := &Store{nextQuestionID: 1, nextCategoryID: 1}
	for _, c := range categories {
		s.categories = append(s.categories, c)
		if c.ID >= s.nextCategoryID {
			s.nextCategoryID = c.ID + 1
		}
	}
	return s
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

func (s *Store) CreateQuestion(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	q.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions = append(s.questions, *q)
	return nil
}

func (s *Store) ListQuestions(_ context.Context) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	// Return a copy so callers can't modify our internal state.
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out, nil
}

func (s *Store) ListQuestionsByCategory(_ context.Context, category string) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	out := make([]model.Question, 0)
	for _, q := range s.questions {
		if q.Category == category {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *Store) GetQuestion(_ context.Context, id int64) (*model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	for _, q := range s.questions {
		if q.ID == id {
			found := q
			return &found, nil
		}
	}
	return nil, apperror.NotFound("question", id)
}

func (s *Store) DeleteQuestion(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("question", id)
}

func (s *Store) CreateCategory(_ context.Context, c *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	if c.ID == 0 {
		c.ID = s.nextCategoryID
	}
	for _, existing := range s.categories {
		if existing.ID == c.ID {
			return fmt.Errorf("memory: category %d already exists", c.ID)
		}
	}
	if c.ID >= s.nextCategoryID {
		s.nextCategoryID = c.ID + 1
	}
	s.categories = append(s.categories, *c)
	return nil
}

func (s *Store) ListCategories(_ context.Context) ([]model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failWith
}

func (s *Store) Close() error { return nil }
