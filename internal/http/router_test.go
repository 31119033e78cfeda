package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	httptransport "github.com/shirinfathima/voyabot/internal/http"
	"github.com/shirinfathima/voyabot/internal/infra"
)

type rejectAll struct{}

func (rejectAll) VerifySessionToken(context.Context, string) (*infra.SessionToken, error) {
	return nil, errors.New("bad token")
}

func TestRoutes_PublicAndProtected(t *testing.T) {
	h := httptransport.NewServer(httptransport.ServerDeps{Verifier: rejectAll{}}).Routes()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodPost, "/chat", http.StatusUnauthorized},
		{http.MethodPost, "/submit_questionnaire", http.StatusUnauthorized},
		{http.MethodGet, "/get_responses", http.StatusUnauthorized},
		{http.MethodGet, "/get_reviews", http.StatusUnauthorized},
		{http.MethodPost, "/submit_review", http.StatusUnauthorized},
		{http.MethodPost, "/like_dislike_review", http.StatusUnauthorized},
		{http.MethodPost, "/reply_review", http.StatusUnauthorized},
		{http.MethodDelete, "/delete_reply", http.StatusUnauthorized},
		{http.MethodPost, "/resolve_location", http.StatusUnauthorized},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer junk")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoutes_RootMessageAndRequestID(t *testing.T) {
	h := httptransport.NewServer(httptransport.ServerDeps{Verifier: rejectAll{}}).Routes()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.JSONEq(t, `{"message":"Voyabot backend is running!"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- httptransport.NewServer(httptransport.ServerDeps{Verifier: rejectAll{}}).Run(ctx, "127.0.0.1:0")
	}()
	cancel()
	assert.NoError(t, <-done)
}
