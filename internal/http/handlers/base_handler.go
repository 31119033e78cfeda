// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/ai"
	"github.com/shirinfathima/voyabot/internal/modules/review"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeMessage(c *gin.Context, status int, msg string) {
	writeJSON(c, status, messageResponse{Message: msg})
}

// writeModelError maps a failed generation; exhausted is the caller's fixed message.
func writeModelError(c *gin.Context, err error, exhausted string) {
	var abort *ai.AbortError
	switch {
	case errors.Is(err, ai.ErrAllModelsFailed):
		writeError(c, http.StatusInternalServerError, exhausted)
	case errors.As(err, &abort):
		writeError(c, http.StatusInternalServerError, "Gemini API error: "+abort.Err.Error())
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, review.ErrEmptyReview):
		writeError(c, http.StatusBadRequest, "Review cannot be empty.")
	case errors.Is(err, review.ErrMissingID):
		writeError(c, http.StatusBadRequest, "Review ID is required")
	case errors.Is(err, review.ErrInvalidAction):
		writeError(c, http.StatusBadRequest, "Invalid action. Must be 'like' or 'dislike'")
	case errors.Is(err, review.ErrInvalidID):
		writeError(c, http.StatusBadRequest, "Invalid review ID format")
	case errors.Is(err, review.ErrEmptyReply):
		writeError(c, http.StatusBadRequest, "Reply text cannot be empty")
	case errors.Is(err, review.ErrNotFound):
		writeError(c, http.StatusNotFound, "Review not found")
	case errors.Is(err, review.ErrReviewNotUpdated):
		writeError(c, http.StatusNotFound, "Review not found or not updated")
	case errors.Is(err, review.ErrReplyNotDeleted):
		writeError(c, http.StatusNotFound, "Reply not found or not deleted")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "An error occurred")
	}
}
