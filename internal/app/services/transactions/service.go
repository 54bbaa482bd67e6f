// Package transactions manages financial events: validation, ownership
// scoping, filtered listing and running totals.
package transactions

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/fintrack-app/fintrack/internal/errors"

	"github.com/fintrack-app/fintrack/internal/app/domain/transaction"
	"github.com/fintrack-app/fintrack/internal/app/storage"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Input carries the transaction fields for create and update. Update
// replaces all mutable fields at once.
type Input struct {
	Description string
	Type        transaction.Type
	Date        string
	Value       float64
	CategoryID  string
}

// ListQuery is the optional listing criteria. All present criteria are
// combined with AND, always scoped to the caller.
type ListQuery struct {
	Description string
	Type        transaction.Type
	CategoryID  string
	Period      string
}

// ListResult bundles the filtered transactions with their per-type totals so
// callers get both in one round trip.
type ListResult struct {
	Transactions []transaction.Transaction `json:"transactions"`
	TotalCredit  float64                   `json:"totalCredit"`
	TotalDebit   float64                   `json:"totalDebit"`
}

// Service manages transactions with per-user ownership scoping.
type Service struct {
	store storage.TransactionStore
	log   *logger.Logger

	// now is swappable so period defaulting is testable.
	now func() time.Time
}

// New constructs a transaction service.
func New(store storage.TransactionStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("transactions")
	}
	return &Service{store: store, log: log, now: time.Now}
}

func validate(input Input) error {
	if len(strings.TrimSpace(input.Description)) < 5 {
		return errors.Validation("description", "description must have at least 5 characters")
	}
	if !input.Type.Valid() {
		return errors.Validation("transactionType", "transaction type must be credit or debit")
	}
	if !dateRe.MatchString(input.Date) {
		return errors.Validation("date", "date must be in YYYY-MM-DD format")
	}
	if input.Value < 0 {
		return errors.Validation("value", "value must be greater than or equal to 0")
	}
	if strings.TrimSpace(input.CategoryID) == "" {
		return errors.Validation("categoryId", "category is required")
	}
	return nil
}

// Create validates the input and persists the transaction for the caller.
func (s *Service) Create(ctx context.Context, userID string, input Input) (transaction.Transaction, error) {
	if err := validate(input); err != nil {
		return transaction.Transaction{}, err
	}

	created, err := s.store.CreateTransaction(ctx, transaction.Transaction{
		UserID:      userID,
		Description: input.Description,
		Type:        input.Type,
		Date:        input.Date,
		Value:       input.Value,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return transaction.Transaction{}, err
	}
	s.log.WithField("transaction_id", created.ID).WithField("user_id", userID).Info("transaction created")
	return created, nil
}

// Find returns the transaction only when it belongs to the caller.
func (s *Service) Find(ctx context.Context, id, userID string) (transaction.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, id, userID)
	if err != nil {
		if err == storage.ErrNotFound {
			return transaction.Transaction{}, errors.NotFound("transaction does not exist")
		}
		return transaction.Transaction{}, err
	}
	return tx, nil
}

// List filters the caller's transactions by the optional criteria and a
// month period, and computes the credit and debit totals over the result in
// the same pass.
func (s *Service) List(ctx context.Context, userID string, query ListQuery) (ListResult, error) {
	if query.Type != "" && !query.Type.Valid() {
		return ListResult{}, errors.Validation("transactionType", "transaction type must be credit or debit")
	}

	prefix, err := resolvePeriod(strings.TrimSpace(query.Period), s.now())
	if err != nil {
		return ListResult{}, err
	}

	found, err := s.store.ListTransactions(ctx, transaction.Filter{
		UserID:      userID,
		Description: query.Description,
		Type:        query.Type,
		CategoryID:  query.CategoryID,
		DatePrefix:  prefix,
	})
	if err != nil {
		return ListResult{}, err
	}

	result := ListResult{Transactions: found}
	for _, tx := range found {
		switch tx.Type {
		case transaction.TypeCredit:
			result.TotalCredit += tx.Value
		case transaction.TypeDebit:
			result.TotalDebit += tx.Value
		}
	}
	return result, nil
}

// Update re-validates ownership, then replaces all mutable fields.
func (s *Service) Update(ctx context.Context, id, userID string, input Input) (transaction.Transaction, error) {
	if err := validate(input); err != nil {
		return transaction.Transaction{}, err
	}

	existing, err := s.Find(ctx, id, userID)
	if err != nil {
		return transaction.Transaction{}, err
	}

	existing.Description = input.Description
	existing.Type = input.Type
	existing.Date = input.Date
	existing.Value = input.Value
	existing.CategoryID = input.CategoryID

	updated, err := s.store.UpdateTransaction(ctx, existing)
	if err != nil {
		if err == storage.ErrNotFound {
			return transaction.Transaction{}, errors.NotFound("transaction does not exist")
		}
		return transaction.Transaction{}, err
	}
	return updated, nil
}

// Delete removes the transaction after the ownership check. A second delete
// of the same id fails with not-found.
func (s *Service) Delete(ctx context.Context, id, userID string) (bool, error) {
	if _, err := s.Find(ctx, id, userID); err != nil {
		return false, err
	}
	if err := s.store.DeleteTransaction(ctx, id, userID); err != nil {
		if err == storage.ErrNotFound {
			return false, errors.NotFound("transaction does not exist")
		}
		return false, err
	}
	s.log.WithField("transaction_id", id).WithField("user_id", userID).Info("transaction deleted")
	return true, nil
}

// TotalAmount is the whole-account balance: all-time credit minus all-time
// debit, with no period restriction.
func (s *Service) TotalAmount(ctx context.Context, userID string) (float64, error) {
	credit, err := s.store.SumTransactionsByType(ctx, userID, transaction.TypeCredit)
	if err != nil {
		return 0, err
	}
	debit, err := s.store.SumTransactionsByType(ctx, userID, transaction.TypeDebit)
	if err != nil {
		return 0, err
	}
	return credit - debit, nil
}

// CountByCategory counts the caller's transactions tagged with the category.
// Recomputed on every read; never cached.
func (s *Service) CountByCategory(ctx context.Context, categoryID, userID string) (int, error) {
	return s.store.CountTransactionsByCategory(ctx, categoryID, userID)
}
