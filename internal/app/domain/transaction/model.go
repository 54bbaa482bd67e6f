// Package transaction defines the financial event model and its listing
// filter.
package transaction

import (
	"strings"
	"time"
)

// Type partitions transactions into money in and money out.
type Type string

const (
	TypeCredit Type = "credit"
	TypeDebit  Type = "debit"
)

// Valid reports whether t is one of the two known types.
func (t Type) Valid() bool {
	return t == TypeCredit || t == TypeDebit
}

// Transaction is a single financial event. Date is the calendar day as a
// YYYY-MM-DD string; keeping it a string makes month filtering a plain
// prefix match.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Type        Type      `json:"transactionType"`
	Date        string    `json:"date"`
	Value       float64   `json:"value"`
	CategoryID  string    `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter is the listing criteria. UserID is always required; the remaining
// fields are applied only when non-empty, combined with AND.
type Filter struct {
	UserID      string
	Description string
	Type        Type
	CategoryID  string
	DatePrefix  string
}

// Matches reports whether tx satisfies every present criterion.
func (f Filter) Matches(tx Transaction) bool {
	if tx.UserID != f.UserID {
		return false
	}
	if f.Description != "" && !strings.Contains(tx.Description, f.Description) {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && tx.CategoryID != f.CategoryID {
		return false
	}
	if f.DatePrefix != "" && !strings.HasPrefix(tx.Date, f.DatePrefix) {
		return false
	}
	return true
}
