package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
)

// newTestDB opens a fresh, fully migrated in-memory database for one test.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestQuestion(t *testing.T, db *DB, text, category string) *model.Question {
	t.Helper()
	q := &model.Question{Question: text, Answer: "answer", Category: category, Difficulty: 1}
	if err := db.CreateQuestion(context.Background(), q); err != nil {
		t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// =========================================================================
// MIGRATION TESTS
// =========================================================================

func TestNew_SeedsCategories(t *testing.T) {
	db := newTestDB(t)

	categories, err := db.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}

	want := []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}
	if len(categories) != len(want) {
		t.Fatalf("ListCategories() returned %d categories, want %d", len(categories), len(want))
	}
	for i, c := range categories {
		if c.ID != int64(i+1) || c.Type != want[i] {
			t.Errorf("category[%d] = {%d %q}, want {%d %q}", i, c.ID, c.Type, i+1, want[i])
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

// =========================================================================
// QUESTION TESTS
// =========================================================================

func TestCreateQuestion_AssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)

	first := createTestQuestion(t, db, "first?", "1")
	second := createTestQuestion(t, db, "second?", "1")

	if first.ID == 0 {
		t.Fatal("CreateQuestion() did not set ID")
	}
	if second.ID <= first.ID {
		t.Errorf("second ID = %d, want greater than %d", second.ID, first.ID)
	}
}

func TestGetQuestion(t *testing.T) {
	db := newTestDB(t)
	created := createTestQuestion(t, db, "What is H2O?", "1")

	found, err := db.GetQuestion(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if *found != *created {
		t.Errorf("GetQuestion() = %+v, want %+v", *found, *created)
	}
}

func TestGetQuestion_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetQuestion(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetQuestion() error = %v, want ErrNotFound", err)
	}
}

func TestListQuestions_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	for _, text := range []string{"a", "b", "c"} {
		createTestQuestion(t, db, text, "2")
	}

	questions, err := db.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("ListQuestions() error = %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("ListQuestions() returned %d, want 3", len(questions))
	}
	for i, want := range []string{"a", "b", "c"} {
		if questions[i].Question != want {
			t.Errorf("questions[%d] = %q, want %q", i, questions[i].Question, want)
		}
	}
}

func TestListQuestions_EmptyIsNotNil(t *testing.T) {
	db := newTestDB(t)

	questions, err := db.ListQuestions(context.Background())
	if err != nil {
		t.Fatalf("ListQuestions() error = %v", err)
	}
	if questions == nil {
		t.Error("ListQuestions() returned nil, want empty slice")
	}
}

func TestListQuestionsByCategory(t *testing.T) {
	db := newTestDB(t)
	createTestQuestion(t, db, "science 1", "1")
	createTestQuestion(t, db, "art 1", "2")
	createTestQuestion(t, db, "science 2", "1")
	// A dangling category reference must not break anything.
	createTestQuestion(t, db, "orphan", "42")

	questions, err := db.ListQuestionsByCategory(context.Background(), "1")
	if err != nil {
		t.Fatalf("ListQuestionsByCategory() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("ListQuestionsByCategory() returned %d, want 2", len(questions))
	}
	for _, q := range questions {
		if q.Category != "1" {
			t.Errorf("question %d has category %q, want %q", q.ID, q.Category, "1")
		}
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	q := createTestQuestion(t, db, "to delete", "3")

	if err := db.DeleteQuestion(context.Background(), q.ID); err != nil {
		t.Fatalf("DeleteQuestion() error = %v", err)
	}

	_, err := db.GetQuestion(context.Background(), q.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetQuestion() after delete: error = %v, want ErrNotFound", err)
	}

	// Second delete reports not found instead of silently succeeding.
	err = db.DeleteQuestion(context.Background(), q.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DeleteQuestion() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// CATEGORY TESTS
// =========================================================================

func TestCreateCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	auto := &model.Category{Type: "Music"}
	if err := db.CreateCategory(ctx, auto); err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if auto.ID != 7 {
		t.Errorf("auto ID = %d, want 7", auto.ID)
	}

	explicit := &model.Category{ID: 20, Type: "Film"}
	if err := db.CreateCategory(ctx, explicit); err != nil {
		t.Fatalf("CreateCategory() with explicit id error = %v", err)
	}

	categories, err := db.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if got := categories[len(categories)-1]; got.ID != 20 || got.Type != "Film" {
		t.Errorf("last category = %+v, want {20 Film}", got)
	}
}

func TestCreateCategory_DuplicateID(t *testing.T) {
	db := newTestDB(t)

	err := db.CreateCategory(context.Background(), &model.Category{ID: 1, Type: "Again"})
	if err == nil {
		t.Fatal("CreateCategory() should fail for an existing id")
	}
}
