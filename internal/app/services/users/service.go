// Package users manages profile reads and updates.
package users

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

// UpdateInput carries the optional profile fields. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Service manages user profiles.
type Service struct {
	users storage.UserStore
	log   *logger.Logger
}

// New constructs a users service.
func New(users storage.UserStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	return &Service{users: users, log: log}
}

// Get returns the caller's own profile. Requesting any other id reports
// not-found rather than forbidden.
func (s *Service) Get(ctx context.Context, id, callerID string) (user.User, error) {
	if id != callerID {
		return user.User{}, errors.NotFound("user does not exist")
	}
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		if err == storage.ErrNotFound {
			return user.User{}, errors.NotFound("user does not exist")
		}
		return user.User{}, err
	}
	return u, nil
}

// Update applies a partial profile patch to the caller's own record.
func (s *Service) Update(ctx context.Context, id, callerID string, input UpdateInput) (user.User, error) {
	u, err := s.Get(ctx, id, callerID)
	if err != nil {
		return user.User{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 10 {
			return user.User{}, errors.Validation("name", "name must have at least 10 characters")
		}
		u.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !emailRe.MatchString(email) {
			return user.User{}, errors.Validation("email", "invalid e-mail address")
		}
		if email != u.Email {
			if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
				return user.User{}, errors.Conflict("e-mail already registered")
			}
			u.Email = email
		}
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return user.User{}, errors.Validation("password", "password must have at least 8 characters")
		}
		hash, err := credentials.HashPassword(*input.Password)
		if err != nil {
			return user.User{}, errors.Internal("hash password", err)
		}
		u.PasswordHash = hash
	}

	updated, err := s.users.UpdateUser(ctx, u)
	if err != nil {
		if err == storage.ErrNotFound {
			return user.User{}, errors.NotFound("user does not exist")
		}
		return user.User{}, err
	}
	s.log.WithField("user_id", updated.ID).Info("user updated")
	return updated, nil
}

// Delete removes the caller's own account. Categories and transactions are
// not cascaded here; that edge belongs to the store.
func (s *Service) Delete(ctx context.Context, id, callerID string) (bool, error) {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return false, err
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			return false, errors.NotFound("user does not exist")
		}
		return false, err
	}
	s.log.WithField("user_id", id).Info("user deleted")
	return true, nil
}
