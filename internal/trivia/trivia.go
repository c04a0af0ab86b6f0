// Package trivia holds the query and selection rules behind the endpoints:
// page slicing, text search, and picking the next quiz question.
//
// Everything here is a pure function over slices of questions that the service
// layer has already fetched from the store, so the rules can be tested without
// a database or an HTTP server.
package trivia

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
)

const (
	// DefaultPageSize is how many questions one page of GET /questions holds.
	DefaultPageSize = 10

	// AnyCategory is the quiz category id meaning "draw from every category".
	AnyCategory int64 = 0
)

// ParsePage reads the page query parameter. Absent or non-numeric input means
// page 1; numeric input is returned as is, including zero and negatives, which
// Paginate rejects.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return page
}

// Paginate returns questions[(page-1)*perPage : page*perPage], clipped to the
// slice length. An empty window (page < 1, past the last page, or no questions
// at all) is reported as not found instead of an empty page.
func Paginate(questions []model.Question, page, perPage int) ([]model.Question, error) {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	// Compare page numbers rather than offsets so a huge page cannot overflow.
	lastPage := 0
	if len(questions) > 0 {
		lastPage = (len(questions)-1)/perPage + 1
	}
	if page < 1 || page > lastPage {
		return nil, pageNotFound(page)
	}

	start := (page - 1) * perPage
	end := min(start+perPage, len(questions))

	return questions[start:end], nil
}

func pageNotFound(page int) error {
	return &apperror.AppError{
		Err:     apperror.ErrNotFound,
		Message: fmt.Sprintf("page %d is out of range", page),
	}
}

// CategoryKey is the form a category id takes in Question.Category.
func CategoryKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Search returns the questions whose text contains term, ignoring case.
// An empty term matches every question. The result is never nil.
func Search(questions []model.Question, term string) []model.Question {
	needle := strings.ToLower(term)
	out := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q.Question), needle) {
			out = append(out, q)
		}
	}
	return out
}

// Eligible drops every candidate whose id appears in previous.
func Eligible(candidates []model.Question, previous []int64) []model.Question {
	if len(previous) == 0 {
		return candidates
	}

	seen := make(map[int64]struct{}, len(previous))
	for _, id := range previous {
		seen[id] = struct{}{}
	}

	out := make([]model.Question, 0, len(candidates))
	for _, q := range candidates {
		if _, ok := seen[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}

// Picker returns a uniformly distributed int in [0, n). n is always > 0.
type Picker func(n int) int

// RandomPicker draws from math/rand's global, concurrency-safe source.
func RandomPicker(n int) int {
	return rand.Intn(n)
}

// Pick chooses one question from eligible. It returns nil when eligible is
// empty, which callers report as "no more questions" rather than an error.
func Pick(eligible []model.Question, pick Picker) *model.Question {
	if len(eligible) == 0 {
		return nil
	}
	if pick == nil {
		pick = RandomPicker
	}
	chosen := eligible[pick(len(eligible))]
	return &chosen
}
