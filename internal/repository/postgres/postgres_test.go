package postgres

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
)

// newTestDB connects to the database named by TRIVIA_TEST_DATABASE_URL and
// empties the questions table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	url := os.Getenv("TRIVIA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TRIVIA_TEST_DATABASE_URL not set; skipping postgres tests")
	}

	ctx := context.Background()
	db, err := New(ctx, url, 4)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.pool.Exec(ctx, `TRUNCATE questions RESTART IDENTITY`)
	require.NoError(t, err)
	return db
}

func TestOpen_RejectsOversizedPool(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int is 32 bits")
	}
	_, err := Open(context.Background(), "postgres://localhost/trivia", math.MaxInt32+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestQuestionLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	q := &model.Question{Question: "Largest planet?", Answer: "Jupiter", Category: "1", Difficulty: 2}
	require.NoError(t, db.CreateQuestion(ctx, q))
	assert.NotZero(t, q.ID)

	found, err := db.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, *q, *found)

	byCategory, err := db.ListQuestionsByCategory(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	none, err := db.ListQuestionsByCategory(ctx, "2")
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.NotNil(t, none)

	require.NoError(t, db.DeleteQuestion(ctx, q.ID))
	assert.ErrorIs(t, db.DeleteQuestion(ctx, q.ID), apperror.ErrNotFound)

	_, err = db.GetQuestion(ctx, q.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListCategories_Seeded(t *testing.T) {
	db := newTestDB(t)

	categories, err := db.ListCategories(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(categories), 6)
	assert.Equal(t, model.Category{ID: 1, Type: "Science"}, categories[0])
}
