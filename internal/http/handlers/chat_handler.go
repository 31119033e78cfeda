// README: Chat handler (session-guarded travel chat).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/modules/chat"
)

type ChatService interface {
	Handle(ctx context.Context, msg string) (*chat.Reply, error)
}

type ChatHandler struct {
	chat ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{chat: svc}
}

type chatReq struct {
	Message string `json:"message"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.chat.Handle(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			writeError(c, http.StatusBadRequest, "Message is required")
			return
		}
		writeModelError(c, err, "All AI models failed. Please try again later.")
		return
	}
	writeJSON(c, http.StatusOK, reply)
}
