// README: Questionnaire handlers (question list and submission).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/http/middleware"
	"github.com/shirinfathima/voyabot/internal/modules/questionnaire"
)

type QuestionnaireService interface {
	Questions(ctx context.Context) ([]questionnaire.Question, error)
	Submit(ctx context.Context, username string, answers questionnaire.Answers) (*questionnaire.Result, error)
	Responses(ctx context.Context, username string) (questionnaire.Answers, error)
}

type QuestionnaireHandler struct {
	questionnaire QuestionnaireService
}

func NewQuestionnaireHandler(svc QuestionnaireService) *QuestionnaireHandler {
	return &QuestionnaireHandler{questionnaire: svc}
}

// Questions handles GET /get_questions.
func (h *QuestionnaireHandler) Questions(c *gin.Context) {
	qs, err := h.questionnaire.Questions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "could not load questions")
		return
	}
	writeJSON(c, http.StatusOK, qs)
}

// Responses handles GET /get_responses: the caller's last submitted answers,
// used to pre-fill the form.
func (h *QuestionnaireHandler) Responses(c *gin.Context) {
	answers, err := h.questionnaire.Responses(c.Request.Context(), middleware.CallerUsername(c))
	if err != nil {
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "could not load responses")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"responses": answers})
}

// Submit handles POST /submit_questionnaire.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	var answers questionnaire.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	res, err := h.questionnaire.Submit(c.Request.Context(), middleware.CallerUsername(c), answers)
	switch {
	case err == nil:
		writeJSON(c, http.StatusCreated, res)
	case errors.Is(err, questionnaire.ErrIncomplete):
		writeError(c, http.StatusBadRequest, "Please answer all questions before submitting.")
	case errors.Is(err, questionnaire.ErrRecommendationFailed):
		writeError(c, http.StatusInternalServerError, "AI model failed. Please try again later.")
	default:
		writeModelError(c, err, "AI model failed. Please try again later.")
	}
}
