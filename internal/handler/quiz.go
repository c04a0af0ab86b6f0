package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/trivia-api/internal/model"
	"github.com/sakif/trivia-api/internal/service"
)

// QuizHandler serves the next question of a quiz.
type QuizHandler struct {
	service *service.QuizService
	logger  *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc *service.QuizService, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{service: svc, logger: logger}
}

type quizResponse struct {
	Success  bool            `json:"success"`
	Question *model.Question `json:"question"`
}

// HandleNext picks a random question the client has not seen yet.
//
// HTTP: POST /quizzes
// REQUEST BODY: {"previous_questions":[1,4],"quiz_category":{"id":1,"type":"Science"}}
//
// quiz_category.id 0 means any category. When every candidate has already
// been served the response is {"success":true,"question":null}.
func (h *QuizHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := readJSON(w, r, quizRequestSchema, &req, badRequest); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	round := service.QuizRound{PreviousQuestions: req.PreviousQuestions}
	if req.QuizCategory != nil && req.QuizCategory.ID.set {
		id := req.QuizCategory.ID.value
		round.CategoryID = &id
	}

	question, err := h.service.Next(r.Context(), round)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, quizResponse{Success: true, Question: question})
}
