package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/trivia-api/internal/apperror"
	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/service"
)

// CategoryHandler serves the category listing and the per-category question filter.
type CategoryHandler struct {
	categories *service.CategoryService
	questions  *service.QuestionService
	logger     *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService, questions *service.QuestionService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, questions: questions, logger: logger}
}

type categoriesResponse struct {
	Success    bool              `json:"success"`
	Categories model.CategoryMap `json:"categories"`
}

// HandleList returns every category.
//
// HTTP: GET /categories
//
//	{"success":true,"categories":{"1":"Science","2":"Art"}}
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Map(r.Context())
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, categoriesResponse{Success: true, Categories: categories})
}

type categoryQuestionsResponse struct {
	Success         bool             `json:"success"`
	Questions       []model.Question `json:"questions"`
	TotalQuestions  int              `json:"total_questions"`
	CurrentCategory int64            `json:"current_category"`
}

// HandleQuestions returns every question filed under the category in the path.
//
// HTTP: POST /categories/{category_id}/questions (GET is accepted too)
//
// A category id that is zero or not a number is unprocessable. An id that
// matches no category simply returns an empty list.
func (h *CategoryHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "category_id")
	categoryID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		respondError(h.logger, w, r, apperror.ValidationFailed("category_id", "category id must be an integer, got "+strconv.Quote(raw)))
		return
	}

	questions, err := h.questions.ByCategory(r.Context(), categoryID)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, categoryQuestionsResponse{
		Success:         true,
		Questions:       questions,
		TotalQuestions:  len(questions),
		CurrentCategory: categoryID,
	})
}
