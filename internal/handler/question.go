package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/service"
	"github.com/sakif/trivia-api/internal/trivia"
)

// QuestionHandler manages listing, searching, creating and deleting questions.
//
// The handler only translates between HTTP and the service: it parses the path,
// query and body, calls one service method and shapes the envelope. The rules
// themselves (what counts as missing, how pages are cut) live in the service
// and in package trivia.
type QuestionHandler struct {
	service *service.QuestionService
	logger  *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(svc *service.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{service: svc, logger: logger}
}

// pageResponse is the paginated listing. CurrentCategory is always nil,
// which encodes as null.
type pageResponse struct {
	Success         bool              `json:"success"`
	Questions       []model.Question  `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      model.CategoryMap `json:"categories"`
	CurrentCategory *int64            `json:"current_category"`
}

// HandleList returns one page of questions.
//
// HTTP: GET /questions?page=2
//
// A missing or non-numeric page means page 1. A page with nothing on it is 404.
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := trivia.ParsePage(r.URL.Query().Get("page"))

	result, err := h.service.Page(r.Context(), page)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, pageResponse{
		Success:        true,
		Questions:      result.Questions,
		TotalQuestions: result.Total,
		Categories:     result.Categories,
	})
}

type createdResponse struct {
	Success bool  `json:"success"`
	Created int64 `json:"created"`
}

// HandleCreate stores a new question.
//
// HTTP: POST /questions
// REQUEST BODY: {"question":"...","answer":"...","category":"1","difficulty":2}
//
// category may also be sent as an integer. A body that is not JSON is 400; a
// field of the wrong type or a missing/empty field is 422.
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createQuestionRequest
	if err := readJSON(w, r, createQuestionRequestSchema, &req, unprocessable("body")); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	id, err := h.service.Create(r.Context(), service.NewQuestion{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.value,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, createdResponse{Success: true, Created: id})
}

type deletedResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
}

// HandleDelete removes a question.
//
// HTTP: DELETE /questions/{id}
//
// An id that is not a number cannot name a question, so it is 404 like any
// other unknown id.
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(h.logger, w, r, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "question not found with id " + strconv.Quote(raw),
		})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, deletedResponse{Success: true, Deleted: id})
}

type searchResponse struct {
	Success         bool             `json:"success"`
	Questions       []model.Question `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	CurrentCategory *int64           `json:"current_category"`
}

// HandleSearch returns the questions whose text contains searchTerm.
//
// HTTP: POST /questions/search
// REQUEST BODY: {"searchTerm":"title"}
//
// The match is a case-insensitive substring match; an empty or absent term
// matches every question.
func (h *QuestionHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := readJSON(w, r, searchRequestSchema, &req, badRequest); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	questions, err := h.service.Search(r.Context(), req.SearchTerm)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, searchResponse{
		Success:        true,
		Questions:      questions,
		TotalQuestions: len(questions),
	})
}
