// README: Signup and login handlers.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/modules/account"
)

type AccountService interface {
	Signup(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
}

type AccountHandler struct {
	accounts AccountService
}

func NewAccountHandler(svc AccountService) *AccountHandler {
	return &AccountHandler{accounts: svc}
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Signup handles POST /signup.
func (h *AccountHandler) Signup(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.accounts.Signup(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeMessage(c, http.StatusCreated, "User registered successfully")
	case errors.Is(err, account.ErrUsernameTaken):
		writeMessage(c, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, account.ErrBadRequest):
		writeMessage(c, http.StatusBadRequest, "Username and password are required")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// Login handles POST /login.
func (h *AccountHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	token, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(c, http.StatusOK, loginResp{Message: "Login successful", Token: token})
	case errors.Is(err, account.ErrInvalidCredentials):
		writeMessage(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		_ = c.Error(err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
