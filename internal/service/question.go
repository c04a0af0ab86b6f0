package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/repository"
	"github.com/sakif/trivia-api/internal/trivia"
)

// QuestionOptions tunes QuestionService.
type QuestionOptions struct {
	// PageSize is the number of questions per page; <= 0 means trivia.DefaultPageSize.
	PageSize int

	// AllowZeroDifficulty accepts difficulty 0 on create. By default 0 is
	// treated like a missing difficulty, the same as an empty string is
	// treated like a missing question.
	AllowZeroDifficulty bool
}

// QuestionService handles listing, searching, creating and deleting questions.
type QuestionService struct {
	questions  repository.QuestionRepository
	categories repository.CategoryRepository
	opts       QuestionOptions
	logger     *slog.Logger
}

// NewQuestionService creates a QuestionService.
func NewQuestionService(
	questions repository.QuestionRepository,
	categories repository.CategoryRepository,
	opts QuestionOptions,
	logger *slog.Logger,
) *QuestionService {
	if opts.PageSize <= 0 {
		opts.PageSize = trivia.DefaultPageSize
	}
	return &QuestionService{
		questions:  questions,
		categories: categories,
		opts:       opts,
		logger:     logger,
	}
}

// Page is one page of questions plus the context the client renders around it.
type Page struct {
	Questions  []model.Question
	Total      int
	Categories model.CategoryMap
}

// Page returns the requested page of all questions, the overall question count
// and the full category mapping. A page with no questions on it is ErrNotFound.
func (s *QuestionService) Page(ctx context.Context, page int) (*Page, error) {
	all, err := s.questions.ListQuestions(ctx)
	if err != nil {
		s.logger.Error("failed to list questions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	paged, err := trivia.Paginate(all, page, s.opts.PageSize)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return &Page{
		Questions:  paged,
		Total:      len(all),
		Categories: model.NewCategoryMap(categories),
	}, nil
}

// NewQuestion is the input to Create. The handler has already decoded the body:
// a missing field is the zero value, a numeric category is in decimal string
// form (numeric zero becomes ""), and Difficulty is nil when absent.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   string
	Difficulty *int
}

// Create validates q and stores it, returning the new question's id.
//
// VALIDATION:
// Every field is required and must be "truthy": an empty string or a missing
// value is rejected, and so is difficulty 0 unless AllowZeroDifficulty is set.
func (s *QuestionService) Create(ctx context.Context, q NewQuestion) (int64, error) {
	switch {
	case q.Question == "":
		return 0, apperror.ValidationFailed("question", "question is required")
	case q.Answer == "":
		return 0, apperror.ValidationFailed("answer", "answer is required")
	case q.Category == "":
		return 0, apperror.ValidationFailed("category", "category is required")
	case q.Difficulty == nil:
		return 0, apperror.ValidationFailed("difficulty", "difficulty is required")
	case *q.Difficulty == 0 && !s.opts.AllowZeroDifficulty:
		return 0, apperror.ValidationFailed("difficulty", "difficulty is required")
	case *q.Difficulty < 0:
		return 0, apperror.ValidationFailed("difficulty", "difficulty must not be negative")
	}

	question := &model.Question{
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: *q.Difficulty,
	}
	if err := s.questions.CreateQuestion(ctx, question); err != nil {
		s.logger.Error("failed to create question", slog.String("error", err.Error()))
		return 0, fmt.Errorf("creating question: %w", err)
	}

	s.logger.Info("question created",
		slog.Int64("id", question.ID),
		slog.String("category", question.Category),
	)
	return question.ID, nil
}

// Delete removes the question with the given id.
// Returns an error wrapping apperror.ErrNotFound when there is no such question,
// including on a second delete of the same id.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.questions.GetQuestion(ctx, id); err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to look up question", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		return err
	}

	if err := s.questions.DeleteQuestion(ctx, id); err != nil {
		// A concurrent delete between the lookup and here still surfaces as not found.
		if !errors.Is(err, apperror.ErrNotFound) {
			s.logger.Error("failed to delete question", slog.Int64("id", id), slog.String("error", err.Error()))
		}
		return err
	}

	s.logger.Info("question deleted", slog.Int64("id", id))
	return nil
}

// ByCategory returns every question filed under categoryID. Zero is not a
// category and is rejected as a validation error. The category does not have
// to exist: an unknown id simply matches nothing.
func (s *QuestionService) ByCategory(ctx context.Context, categoryID int64) ([]model.Question, error) {
	if categoryID == 0 {
		return nil, apperror.ValidationFailed("category_id", "category id is required")
	}

	questions, err := s.questions.ListQuestionsByCategory(ctx, trivia.CategoryKey(categoryID))
	if err != nil {
		s.logger.Error("failed to list questions by category",
			slog.Int64("category_id", categoryID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing questions for category %d: %w", categoryID, err)
	}
	return questions, nil
}

// Search returns the questions whose text contains term, case-insensitively.
func (s *QuestionService) Search(ctx context.Context, term string) ([]model.Question, error) {
	all, err := s.questions.ListQuestions(ctx)
	if err != nil {
		s.logger.Error("failed to list questions for search", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching questions: %w", err)
	}
	return trivia.Search(all, term), nil
}
