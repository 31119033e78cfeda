// README: Location resolution handler.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type LocationResolver interface {
	ResolveLocation(ctx context.Context, text string) (string, bool)
}

type LocationHandler struct {
	resolver LocationResolver
}

func NewLocationHandler(r LocationResolver) *LocationHandler {
	return &LocationHandler{resolver: r}
}

type resolveReq struct {
	Text string `json:"text"`
}

// Resolve handles POST /resolve_location.
func (h *LocationHandler) Resolve(c *gin.Context) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(c, http.StatusBadRequest, "text is required")
		return
	}
	place, ok := h.resolver.ResolveLocation(c.Request.Context(), text)
	if !ok {
		writeError(c, http.StatusNotFound, "Location not found")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"location": place})
}
