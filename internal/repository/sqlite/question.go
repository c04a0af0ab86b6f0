package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// If *DB stops satisfying repository.Store the build fails here instead of at
// the call site in server.New.
var _ repository.Store = (*DB)(nil)

const questionColumns = `id, question, answer, category, difficulty`

// CreateQuestion inserts q and fills in q.ID with the id SQLite assigned.
//
// The ? placeholders are filled in order by the arguments after the SQL string;
// the driver escapes the values, so no user input is ever spliced into SQL.
func (db *DB) CreateQuestion(ctx context.Context, q *model.Question) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO questions (question, answer, category, difficulty)
		 VALUES (?, ?, ?, ?)`,
		q.Question,
		q.Answer,
		q.Category,
		q.Difficulty,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating question: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new question id: %w", err)
	}
	q.ID = id

	return nil
}

// ListQuestions returns every question in insertion order.
func (db *DB) ListQuestions(ctx context.Context) ([]model.Question, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing questions: %w", err)
	}
	return scanQuestions(rows)
}

// ListQuestionsByCategory returns the questions whose category column equals
// category exactly. Callers pass the decimal string form of the category id.
func (db *DB) ListQuestionsByCategory(ctx context.Context, category string) ([]model.Question, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE category = ? ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing questions for category %s: %w", category, err)
	}
	return scanQuestions(rows)
}

// GetQuestion retrieves a single question by id.
// sql.ErrNoRows is translated into apperror.NotFound so the handler can answer 404.
func (db *DB) GetQuestion(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	err := db.conn.QueryRowContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ?`,
		id,
	).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("question", id)
		}
		return nil, fmt.Errorf("sqlite: getting question %d: %w", id, err)
	}
	return &q, nil
}

// DeleteQuestion removes a question by id.
// RowsAffected() == 0 means the WHERE clause matched nothing → not found.
func (db *DB) DeleteQuestion(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting question %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("question", id)
	}

	return nil
}

// scanQuestions drains rows into a slice and always closes rows.
//
// The returned slice is never nil, so an empty result encodes as [] and not null.
func scanQuestions(rows *sql.Rows) ([]model.Question, error) {
	defer rows.Close()

	questions := make([]model.Question, 0)
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("sqlite: scanning question row: %w", err)
		}
		questions = append(questions, q)
	}

	// rows.Err() reports failures that happened during iteration.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating questions: %w", err)
	}

	return questions, nil
}
