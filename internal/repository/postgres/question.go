package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/repository"
)

var _ repository.Store = (*DB)(nil)

const questionColumns = `id, question, answer, category, difficulty`

// CreateQuestion inserts q and fills in q.ID from RETURNING.
func (db *DB) CreateQuestion(ctx context.Context, q *model.Question) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO questions (question, answer, category, difficulty)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		q.Question, q.Answer, q.Category, q.Difficulty,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("postgres: creating question: %w", err)
	}
	return nil
}

// ListQuestions returns every question in insertion order.
func (db *DB) ListQuestions(ctx context.Context) ([]model.Question, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing questions: %w", err)
	}
	return scanQuestions(rows)
}

// ListQuestionsByCategory returns the questions whose category equals category.
func (db *DB) ListQuestionsByCategory(ctx context.Context, category string) ([]model.Question, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE category = $1 ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: listing questions for category %s: %w", category, err)
	}
	return scanQuestions(rows)
}

// GetQuestion retrieves a single question; pgx.ErrNoRows becomes apperror.NotFound.
func (db *DB) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	err := db.pool.QueryRow(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("question", id)
		}
		return nil, fmt.Errorf("postgres: getting question %d: %w", id, err)
	}
	return &q, nil
}

// DeleteQuestion removes a question; zero affected rows means not found.
func (db *DB) DeleteQuestion(ctx context.Context, id int64) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("postgres: deleting question %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("question", id)
	}
	return nil
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	defer rows.Close()

	questions := make([]model.Question, 0)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("postgres: scanning question row: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterating questions: %w", err)
	}
	return questions, nil
}
