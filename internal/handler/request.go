package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/sakif/trivia-api/internal/apperror"
)

// maxBodyBytes caps request bodies. Every body this API accepts is a few
// hundred bytes at most.
const maxBodyBytes = 1 << 20

// readJSON reads the request body and runs it through decodeBody.
func readJSON(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, dst any, onViolation func(string) error) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.BadRequest("request body too large")
		}
		return apperror.BadRequest(fmt.Sprintf("reading request body: %v", err))
	}
	return decodeBody(r.Context(), body, schema, dst, onViolation)
}

// categoryRef is a question's category as the client sent it: a string or an
// integer. Either way it ends up in decimal string form. The integer 0 is
// falsy and becomes "", while the string "0" is kept as it is.
type categoryRef struct {
	value string
}

func (c *categoryRef) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.value = s
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("category must be a string or an integer")
	}
	if n != 0 {
		c.value = strconv.FormatInt(n, 10)
	}
	return nil
}

// flexibleID is an id that may arrive as a JSON integer or a numeric string.
type flexibleID struct {
	value int64
	set   bool
}

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		f.value, f.set = n, true
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("id must be an integer or a numeric string")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("id %q is not numeric", s)
	}
	f.value, f.set = n, true
	return nil
}

// createQuestionRequest is the body of POST /questions.
type createQuestionRequest struct {
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Category   categoryRef `json:"category"`
	Difficulty *int        `json:"difficulty"`
}

// searchRequest is the body of POST /questions/search.
type searchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// quizCategory is the quiz_category descriptor. The client also sends the
// category label as "type"; it is accepted and ignored.
type quizCategory struct {
	ID   flexibleID `json:"id"`
	Type any        `json:"type"`
}

// quizRequest is the body of POST /quizzes.
type quizRequest struct {
	PreviousQuestions []int64       `json:"previous_questions"`
	QuizCategory      *quizCategory `json:"quiz_category"`
}

func unprocessable(field string) func(string) error {
	return func(msg string) error {
		return apperror.ValidationFailed(field, msg)
	}
}

func badRequest(msg string) error {
	return apperror.BadRequest(msg)
}
