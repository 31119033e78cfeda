package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSessions_RoundTrip(t *testing.T) {
	s, err := NewJWTSessions("secret", time.Hour)
	require.NoError(t, err)

	raw, err := s.IssueSessionToken("asha")
	require.NoError(t, err)

	tok, err := s.VerifySessionToken(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "asha", tok.Username)
	assert.True(t, tok.ExpiresAt.After(time.Now()))
}

func TestJWTSessions_RejectsForeignSecret(t *testing.T) {
	a, _ := NewJWTSessions("secret-a", time.Hour)
	b, _ := NewJWTSessions("secret-b", time.Hour)

	raw, err := a.IssueSessionToken("asha")
	require.NoError(t, err)

	_, err = b.VerifySessionToken(context.Background(), raw)
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestJWTSessions_RejectsExpired(t *testing.T) {
	s, _ := NewJWTSessions("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issued }

	raw, err := s.IssueSessionToken("asha")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.VerifySessionToken(context.Background(), raw)
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestJWTSessions_RejectsGarbage(t *testing.T) {
	s, _ := NewJWTSessions("secret", time.Hour)
	_, err := s.VerifySessionToken(context.Background(), "not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidSession))
}

func TestNewJWTSessions_EmptySecret(t *testing.T) {
	_, err := NewJWTSessions("", time.Hour)
	assert.Error(t, err)
}
