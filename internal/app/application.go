// Package app ties the domain services together.
package app

import (
	"github.com/fintrack-app/fintrack/internal/app/services/auth"
	"github.com/fintrack-app/fintrack/internal/app/services/categories"
	"github.com/fintrack-app/fintrack/internal/app/services/transactions"
	"github.com/fintrack-app/fintrack/internal/app/services/users"
	"github.com/fintrack-app/fintrack/internal/app/storage"
	"github.com/fintrack-app/fintrack/internal/app/storage/memory"
	credentials "github.com/fintrack-app/fintrack/internal/auth"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Users        storage.UserStore
	Categories   storage.CategoryStore
	Transactions storage.TransactionStore
}

// Application bundles the wired domain services.
type Application struct {
	log *logger.Logger

	Auth         *auth.Service
	Users        *users.Service
	Categories   *categories.Service
	Transactions *transactions.Service
}

// New builds a fully initialised application with the provided stores and
// token issuer.
func New(stores Stores, issuer *credentials.TokenIssuer, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Users == nil {
		stores.Users = mem
	}
	if stores.Categories == nil {
		stores.Categories = mem
	}
	if stores.Transactions == nil {
		stores.Transactions = mem
	}

	return &Application{
		log:          log,
		Auth:         auth.New(stores.Users, issuer, log),
		Users:        users.New(stores.Users, log),
		Categories:   categories.New(stores.Categories, log),
		Transactions: transactions.New(stores.Transactions, log),
	}
}
