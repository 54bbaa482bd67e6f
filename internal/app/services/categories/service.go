// Package categories manages user-owned transaction categories.
package categories

import (
	"context"
	"regexp"
	"strings"

	"github.com/fintrack-app/fintrack/internal/errors"

	"github.com/fintrack-app/fintrack/internal/app/domain/category"
	"github.com/fintrack-app/fintrack/internal/app/storage"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

var hexColorRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// Input carries the category fields for create and update. Update replaces
// all mutable fields at once.
type Input struct {
	Title       string
	Description string
	Icon        string
	Color       string
}

// Service manages categories with per-user ownership scoping.
type Service struct {
	store storage.CategoryStore
	log   *logger.Logger
}

// New constructs a category service.
func New(store storage.CategoryStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("categories")
	}
	return &Service{store: store, log: log}
}

func validate(input Input) error {
	if len(strings.TrimSpace(input.Title)) < 5 {
		return errors.Validation("title", "title must have at least 5 characters")
	}
	if strings.TrimSpace(input.Icon) == "" {
		return errors.Validation("icon", "icon is required")
	}
	if !hexColorRe.MatchString(input.Color) {
		return errors.Validation("color", "color must be a hexadecimal value (#RRGGBB)")
	}
	return nil
}

// Create validates the input, checks the per-owner title uniqueness and
// persists the category. Two concurrent creates with the same title can both
// pass the check; the database unique index decides the loser.
func (s *Service) Create(ctx context.Context, userID string, input Input) (category.Category, error) {
	if err := validate(input); err != nil {
		return category.Category{}, err
	}

	if _, err := s.store.GetCategoryByTitle(ctx, userID, input.Title); err == nil {
		return category.Category{}, errors.Conflict("category already registered")
	}

	created, err := s.store.CreateCategory(ctx, category.Category{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
	})
	if err != nil {
		return category.Category{}, err
	}
	s.log.WithField("category_id", created.ID).WithField("user_id", userID).Info("category created")
	return created, nil
}

// Find returns the category only when it belongs to the caller.
func (s *Service) Find(ctx context.Context, id, userID string) (category.Category, error) {
	c, err := s.store.GetCategory(ctx, id, userID)
	if err != nil {
		if err == storage.ErrNotFound {
			return category.Category{}, errors.NotFound("category does not exist or does not belong to the user")
		}
		return category.Category{}, err
	}
	return c, nil
}

// List returns all of the caller's categories.
func (s *Service) List(ctx context.Context, userID string) ([]category.Category, error) {
	return s.store.ListCategories(ctx, userID)
}

// Update re-validates ownership, then replaces all mutable fields.
func (s *Service) Update(ctx context.Context, id, userID string, input Input) (category.Category, error) {
	if err := validate(input); err != nil {
		return category.Category{}, err
	}

	existing, err := s.Find(ctx, id, userID)
	if err != nil {
		return category.Category{}, err
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Icon = input.Icon
	existing.Color = input.Color

	updated, err := s.store.UpdateCategory(ctx, existing)
	if err != nil {
		if err == storage.ErrNotFound {
			return category.Category{}, errors.NotFound("category does not exist or does not belong to the user")
		}
		return category.Category{}, err
	}
	return updated, nil
}

// Delete removes the category after the ownership check. Transactions
// referencing it are left in place.
func (s *Service) Delete(ctx context.Context, id, userID string) (bool, error) {
	if _, err := s.Find(ctx, id, userID); err != nil {
		return false, err
	}
	if err := s.store.DeleteCategory(ctx, id, userID); err != nil {
		if err == storage.ErrNotFound {
			return false, errors.NotFound("category does not exist or does not belong to the user")
		}
		return false, err
	}
	s.log.WithField("category_id", id).WithField("user_id", userID).Info("category deleted")
	return true, nil
}
