// Package storage declares the persistence interfaces implemented by the
// postgres and memory backends.
package storage

import (
	"context"
	"errors"

	"github.com/fintrack-app/fintrack/internal/app/domain/category"
	"github.com/fintrack-app/fintrack/internal/app/domain/transaction"
	"github.com/fintrack-app/fintrack/internal/app/domain/user"
)

// ErrNotFound is returned when a record is absent or, for owner-scoped
// lookups, owned by a different user. The two cases are not distinguished.
var ErrNotFound = errors.New("record not found")

// UserStore persists identity records.
type UserStore interface {
	CreateUser(ctx context.Context, u user.User) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) (user.User, error)
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// CategoryStore persists categories. Every lookup except GetCategoryByTitle
// combines the primary key with the owner id in a single predicate.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c category.Category) (category.Category, error)
	UpdateCategory(ctx context.Context, c category.Category) (category.Category, error)
	GetCategory(ctx context.Context, id, userID string) (category.Category, error)
	GetCategoryByTitle(ctx context.Context, userID, title string) (category.Category, error)
	ListCategories(ctx context.Context, userID string) ([]category.Category, error)
	DeleteCategory(ctx context.Context, id, userID string) error
}

// TransactionStore persists transactions and answers the filtered and
// aggregate queries used by listing and totals.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error)
	UpdateTransaction(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error)
	GetTransaction(ctx context.Context, id, userID string) (transaction.Transaction, error)
	ListTransactions(ctx context.Context, f transaction.Filter) ([]transaction.Transaction, error)
	DeleteTransaction(ctx context.Context, id, userID string) error
	CountTransactionsByCategory(ctx context.Context, categoryID, userID string) (int, error)
	SumTransactionsByType(ctx context.Context, userID string, t transaction.Type) (float64, error)
}
