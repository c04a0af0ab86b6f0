package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/repository"
	"github.com/sakif/trivia-api/internal/trivia"
)

// QuizService picks the next question of a quiz round.
type QuizService struct {
	questions repository.QuestionRepository
	pick      trivia.Picker
	logger    *slog.Logger
}

// NewQuizService creates a QuizService. A nil pick uses trivia.RandomPicker.
func NewQuizService(questions repository.QuestionRepository, pick trivia.Picker, logger *slog.Logger) *QuizService {
	if pick == nil {
		pick = trivia.RandomPicker
	}
	return &QuizService{questions: questions, pick: pick, logger: logger}
}

// QuizRound describes where a quiz currently stands.
type QuizRound struct {
	// PreviousQuestions are the ids already served in this quiz.
	PreviousQuestions []int64

	// CategoryID is the quiz category; trivia.AnyCategory draws from all of
	// them. nil means the client sent no category descriptor.
	CategoryID *int64
}

// Next returns a random question of the round's category that has not been
// served yet. When none is left it returns (nil, nil): the quiz is over,
// which is not an error.
func (s *QuizService) Next(ctx context.Context, round QuizRound) (*model.Question, error) {
	if round.CategoryID == nil {
		return nil, apperror.BadRequest("quiz_category with an id is required")
	}
	categoryID := *round.CategoryID

	var (
		candidates []model.Question
		err        error
	)
	if categoryID == trivia.AnyCategory {
		candidates, err = s.questions.ListQuestions(ctx)
	} else {
		candidates, err = s.questions.ListQuestionsByCategory(ctx, trivia.CategoryKey(categoryID))
	}
	if err != nil {
		s.logger.Error("failed to load quiz candidates",
			slog.Int64("category_id", categoryID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("loading quiz candidates: %w", err)
	}

	return trivia.Pick(trivia.Eligible(candidates, round.PreviousQuestions), s.pick), nil
}
