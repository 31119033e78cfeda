// README: Auth middleware; verifies the bearer session token and exposes the caller's username.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/infra"
)

const usernameKey = "voyabot.username"

type errorBody struct {
	Error string `json:"error"`
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "missing or malformed authorization header"})
			return
		}
		tok, err := verifier.VerifySessionToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: "invalid or expired token"})
			return
		}
		c.Set(usernameKey, tok.Username)
		c.Next()
	}
}

// CallerUsername returns the username Auth stored, or "" outside Auth.
func CallerUsername(c *gin.Context) string {
	return c.GetString(usernameKey)
}
