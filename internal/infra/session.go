// README: Session token issuing and verification (HS256 JWT).
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession is returned for missing, malformed, expired or wrongly signed tokens.
var ErrInvalidSession = errors.New("invalid session token")

// SessionToken holds the verified token data used by downstream middleware.
type SessionToken struct {
	Username  string
	ExpiresAt time.Time
}

// TokenVerifier verifies a raw session token string and returns token data.
type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, raw string) (*SessionToken, error)
}

// TokenIssuer signs a session token for an authenticated user.
type TokenIssuer interface {
	IssueSessionToken(username string) (string, error)
}

// JWTSessions is the production issuer and verifier backed by a shared HMAC secret.
type JWTSessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSessions creates a JWTSessions. secret must be non-empty.
func NewJWTSessions(secret string, ttl time.Duration) (*JWTSessions, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt sessions: empty secret")
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTSessions{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (s *JWTSessions) IssueSessionToken(username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s *JWTSessions) VerifySessionToken(_ context.Context, raw string) (*SessionToken, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}
	out := &SessionToken{Username: claims.Subject}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
