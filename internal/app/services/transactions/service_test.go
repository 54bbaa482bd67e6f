package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack/internal/errors"

	"github.com/fintrack-app/fintrack/internal/app/domain/transaction"
	"github.com/fintrack-app/fintrack/internal/app/storage/memory"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

func newTestService() *Service {
	svc := New(memory.New(), logger.New("test", "error"))
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func validInput() Input {
	return Input{
		Description: "Monthly groceries",
		Type:        transaction.TypeDebit,
		Date:        "2025-03-10",
		Value:       120.50,
		CategoryID:  "cat-1",
	}
}

func TestCreate(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if created.UserID != "user-1" {
		t.Errorf("user id = %q", created.UserID)
	}
	if created.Type != transaction.TypeDebit || created.Value != 120.50 {
		t.Errorf("created = %+v", created)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"four char description", func(in *Input) { in.Description = "Rent" }},
		{"bad type", func(in *Input) { in.Type = "transfer" }},
		{"empty type", func(in *Input) { in.Type = "" }},
		{"bad date", func(in *Input) { in.Date = "10/03/2025" }},
		{"negative value", func(in *Input) { in.Value = -0.01 }},
		{"missing category", func(in *Input) { in.CategoryID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(ctx, "user-1", in)
			if !errors.IsCode(err, errors.CodeBadUserInput) {
				t.Errorf("expected BAD_USER_INPUT, got %v", err)
			}
		})
	}
}

func TestCreateBoundaries(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	// Five characters and a zero value both sit on the accepted edge.
	in := validInput()
	in.Description = "Lunch"
	in.Value = 0
	if _, err := svc.Create(ctx, "user-1", in); err != nil {
		t.Fatalf("create at boundary: %v", err)
	}
}

func TestFindScopedToOwner(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Find(ctx, created.ID, "user-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Description != "Monthly groceries" {
		t.Errorf("description = %q", got.Description)
	}

	_, err = svc.Find(ctx, created.ID, "user-2")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for non-owner, got %v", err)
	}
}

func seed(t *testing.T, svc *Service, userID string, in Input) transaction.Transaction {
	t.Helper()
	tx, err := svc.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
	return tx
}

func TestListDefaultsToCurrentMonth(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	inMonth := validInput()
	seed(t, svc, "user-1", inMonth)

	lastMonth := validInput()
	lastMonth.Date = "2025-02-28"
	seed(t, svc, "user-1", lastMonth)

	result, err := svc.List(ctx, "user-1", ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("len = %d, want 1 (current month only)", len(result.Transactions))
	}
	if result.Transactions[0].Date != "2025-03-10" {
		t.Errorf("date = %q", result.Transactions[0].Date)
	}
}

func TestListExplicitPeriod(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	lastMonth := validInput()
	lastMonth.Date = "2025-02-28"
	seed(t, svc, "user-1", lastMonth)
	seed(t, svc, "user-1", validInput())

	result, err := svc.List(ctx, "user-1", ListQuery{Period: "2025-02"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].Date != "2025-02-28" {
		t.Errorf("transactions = %+v", result.Transactions)
	}

	// The localized form selects the same month.
	localized, err := svc.List(ctx, "user-1", ListQuery{Period: "2/2025"})
	if err != nil {
		t.Fatalf("list localized: %v", err)
	}
	if len(localized.Transactions) != 1 {
		t.Errorf("len = %d, want 1", len(localized.Transactions))
	}
}

func TestListInvalidPeriod(t *testing.T) {
	svc := newTestService()

	_, err := svc.List(context.Background(), "user-1", ListQuery{Period: "13/2025"})
	if !errors.IsCode(err, errors.CodeBadUserInput) {
		t.Errorf("expected BAD_USER_INPUT, got %v", err)
	}
}

func TestListCombinedFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	groceries := validInput()
	seed(t, svc, "user-1", groceries)

	salary := validInput()
	salary.Description = "March salary"
	salary.Type = transaction.TypeCredit
	salary.CategoryID = "cat-2"
	salary.Value = 3000
	seed(t, svc, "user-1", salary)

	otherUser := validInput()
	seed(t, svc, "user-2", otherUser)

	result, err := svc.List(ctx, "user-1", ListQuery{
		Description: "salary",
		Type:        transaction.TypeCredit,
		CategoryID:  "cat-2",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("len = %d, want 1", len(result.Transactions))
	}
	if result.Transactions[0].Description != "March salary" {
		t.Errorf("description = %q", result.Transactions[0].Description)
	}
}

func TestListTotalsPartition(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	salary := validInput()
	salary.Description = "March salary"
	salary.Type = transaction.TypeCredit
	salary.Value = 3000
	seed(t, svc, "user-1", salary)

	rent := validInput()
	rent.Description = "March rent"
	rent.Value = 1200
	seed(t, svc, "user-1", rent)

	seed(t, svc, "user-1", validInput()) // 120.50 debit

	result, err := svc.List(ctx, "user-1", ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.TotalCredit != 3000 {
		t.Errorf("total credit = %v, want 3000", result.TotalCredit)
	}
	if result.TotalDebit != 1320.50 {
		t.Errorf("total debit = %v, want 1320.50", result.TotalDebit)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := seed(t, svc, "user-1", validInput())

	updated, err := svc.Update(ctx, created.ID, "user-1", Input{
		Description: "Weekly groceries",
		Type:        transaction.TypeDebit,
		Date:        "2025-03-12",
		Value:       80,
		CategoryID:  "cat-1",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Description != "Weekly groceries" || updated.Value != 80 {
		t.Errorf("updated = %+v", updated)
	}

	_, err = svc.Update(ctx, created.ID, "user-2", validInput())
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for non-owner, got %v", err)
	}
}

func TestDeleteTwice(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created := seed(t, svc, "user-1", validInput())

	ok, err := svc.Delete(ctx, created.ID, "user-1")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}

	_, err = svc.Delete(ctx, created.ID, "user-1")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND on second delete, got %v", err)
	}
}

func TestTotalAmountIgnoresPeriod(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	salary := validInput()
	salary.Description = "January salary"
	salary.Type = transaction.TypeCredit
	salary.Date = "2025-01-05"
	salary.Value = 3000
	seed(t, svc, "user-1", salary)

	rent := validInput()
	rent.Description = "February rent"
	rent.Date = "2025-02-01"
	rent.Value = 1200
	seed(t, svc, "user-1", rent)

	otherUser := validInput()
	otherUser.Type = transaction.TypeCredit
	otherUser.Value = 999
	seed(t, svc, "user-2", otherUser)

	total, err := svc.TotalAmount(ctx, "user-1")
	if err != nil {
		t.Fatalf("total amount: %v", err)
	}
	if total != 1800 {
		t.Errorf("total = %v, want 1800 (all-time credit minus debit)", total)
	}
}

func TestCountByCategory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	seed(t, svc, "user-1", validInput())
	seed(t, svc, "user-1", validInput())

	other := validInput()
	other.CategoryID = "cat-2"
	seed(t, svc, "user-1", other)

	count, err := svc.CountByCategory(ctx, "cat-1", "user-1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, err = svc.CountByCategory(ctx, "cat-1", "user-2")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0 for another user", count)
	}
}
