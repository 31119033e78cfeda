// README: Account service: signup with bcrypt hashing and login issuing session tokens.
package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shirinfathima/voyabot/internal/infra"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("username and password are required")
)

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, u *User) error
}

type Service struct {
	store  UserStore
	issuer infra.TokenIssuer
	cost   int
	log    *zap.Logger
}

func NewService(store UserStore, issuer infra.TokenIssuer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, issuer: issuer, cost: bcrypt.DefaultCost, log: log}
}

// Signup stores a new user. An existing username is left untouched.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrBadRequest
	}

	_, err := s.store.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, ErrNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return err
	}
	if err := s.store.Insert(ctx, &User{Username: username, Password: string(hash)}); err != nil {
		return err
	}
	s.log.Info("user registered", zap.String("username", username))
	return nil
}

// Login checks the password and returns a fresh session token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	u, err := s.store.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.issuer.IssueSessionToken(u.Username)
}
