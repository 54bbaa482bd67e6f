// Package auth implements registration and login against the user store.
package auth

import (
	"context"
	"regexp"
	"strings"

	credentials "github.com/fintrack-app/fintrack/internal/auth"
	"github.com/fintrack-app/fintrack/internal/errors"

	"github.com/fintrack-app/fintrack/internal/app/domain/user"
	"github.com/fintrack-app/fintrack/internal/app/storage"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TokenPair is the pair of signed credentials returned on register and login.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Service handles registration and login.
type Service struct {
	users  storage.UserStore
	issuer *credentials.TokenIssuer
	log    *logger.Logger
}

// New constructs an auth service.
func New(users storage.UserStore, issuer *credentials.TokenIssuer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("auth")
	}
	return &Service{users: users, issuer: issuer, log: log}
}

// Register validates the input, creates the user with a hashed password and
// returns signed tokens plus the created record.
func (s *Service) Register(ctx context.Context, name, email, password string) (TokenPair, user.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if len(name) < 10 {
		return TokenPair{}, user.User{}, errors.Validation("name", "name must have at least 10 characters")
	}
	if !emailRe.MatchString(email) {
		return TokenPair{}, user.User{}, errors.Validation("email", "invalid e-mail address")
	}
	if len(password) < 8 {
		return TokenPair{}, user.User{}, errors.Validation("password", "password must have at least 8 characters")
	}

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return TokenPair{}, user.User{}, errors.Conflict("e-mail already registered")
	}

	hash, err := credentials.HashPassword(password)
	if err != nil {
		return TokenPair{}, user.User{}, errors.Internal("hash password", err)
	}

	created, err := s.users.CreateUser(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return TokenPair{}, user.User{}, err
	}

	pair, err := s.issueTokens(created)
	if err != nil {
		return TokenPair{}, user.User{}, err
	}

	s.log.WithField("user_id", created.ID).Info("user registered")
	return pair, created, nil
}

// Login verifies credentials and returns signed tokens. Both an unknown
// e-mail and a wrong password yield an UNAUTHENTICATED error.
func (s *Service) Login(ctx context.Context, email, password string) (TokenPair, user.User, error) {
	email = strings.TrimSpace(email)

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return TokenPair{}, user.User{}, errors.Unauthenticated("user not registered")
	}
	if !credentials.CheckPassword(password, existing.PasswordHash) {
		s.log.WithField("user_id", existing.ID).Warn("login failed: wrong password")
		return TokenPair{}, user.User{}, errors.Unauthenticated("invalid password")
	}

	pair, err := s.issueTokens(existing)
	if err != nil {
		return TokenPair{}, user.User{}, err
	}
	return pair, existing, nil
}

func (s *Service) issueTokens(u user.User) (TokenPair, error) {
	token, err := s.issuer.Issue(u.ID, u.Email)
	if err != nil {
		return TokenPair{}, errors.Internal("sign token", err)
	}
	refresh, err := s.issuer.Issue(u.ID, u.Email)
	if err != nil {
		return TokenPair{}, errors.Internal("sign refresh token", err)
	}
	return TokenPair{Token: token, RefreshToken: refresh}, nil
}
