package users

import (
	"context"
	"testing"

	credentials "github.com/fintrack-app/fintrack/internal/auth"
	"github.com/fintrack-app/fintrack/internal/errors"

	"github.com/fintrack-app/fintrack/internal/app/domain/user"
	"github.com/fintrack-app/fintrack/internal/app/storage/memory"
	"github.com/fintrack-app/fintrack/pkg/logger"
)

func strPtr(s string) *string { return &s }

func seedUser(t *testing.T, store *memory.Store, name, email string) user.User {
	t.Helper()
	hash, err := credentials.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := store.CreateUser(context.Background(), user.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestGetOwnProfile(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")

	got, err := svc.Get(context.Background(), u.ID, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("email = %q", got.Email)
	}
}

func TestGetOtherUserIsNotFound(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")
	other := seedUser(t, store, "Bobby Example", "bob@example.com")

	_, err := svc.Get(context.Background(), other.ID, u.ID)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND for someone else's id, got %v", err)
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")

	updated, err := svc.Update(context.Background(), u.ID, u.ID, UpdateInput{
		Name: strPtr("Alice B. Anderson"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alice B. Anderson" {
		t.Errorf("name = %q", updated.Name)
	}
	// Untouched fields survive the patch.
	if updated.Email != "alice@example.com" {
		t.Errorf("email changed unexpectedly: %q", updated.Email)
	}
	if updated.PasswordHash != u.PasswordHash {
		t.Error("password hash changed without a password in the patch")
	}
}

func TestUpdatePassword(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")

	updated, err := svc.Update(context.Background(), u.ID, u.ID, UpdateInput{
		Password: strPtr("new-password"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PasswordHash == u.PasswordHash {
		t.Error("expected a fresh hash after password change")
	}
	if !credentials.CheckPassword("new-password", updated.PasswordHash) {
		t.Error("new password does not verify against the stored hash")
	}
}

func TestUpdateValidation(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")
	ctx := context.Background()

	cases := []struct {
		name  string
		input UpdateInput
	}{
		{"short name", UpdateInput{Name: strPtr("Alice")}},
		{"bad email", UpdateInput{Email: strPtr("not-an-email")}},
		{"short password", UpdateInput{Password: strPtr("1234567")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, u.ID, u.ID, tc.input)
			if !errors.IsCode(err, errors.CodeBadUserInput) {
				t.Errorf("expected BAD_USER_INPUT, got %v", err)
			}
		})
	}
}

func TestUpdateEmailConflict(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")
	seedUser(t, store, "Bobby Example", "bob@example.com")

	_, err := svc.Update(context.Background(), u.ID, u.ID, UpdateInput{
		Email: strPtr("bob@example.com"),
	})
	if !errors.IsCode(err, errors.CodeConflict) {
		t.Errorf("expected CONFLICT, got %v", err)
	}
}

func TestUpdateSameEmailIsNoConflict(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")

	// Resubmitting the current address must not collide with itself.
	_, err := svc.Update(context.Background(), u.ID, u.ID, UpdateInput{
		Email: strPtr("alice@example.com"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")
	ctx := context.Background()

	ok, err := svc.Delete(ctx, u.ID, u.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}

	_, err = svc.Get(ctx, u.ID, u.ID)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND after delete, got %v", err)
	}
}

func TestDeleteOtherUserIsNotFound(t *testing.T) {
	store := memory.New()
	svc := New(store, logger.New("test", "error"))
	u := seedUser(t, store, "Alice Anderson", "alice@example.com")
	other := seedUser(t, store, "Bobby Example", "bob@example.com")

	_, err := svc.Delete(context.Background(), other.ID, u.ID)
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}

	// The other account is untouched.
	if _, err := svc.Get(context.Background(), other.ID, other.ID); err != nil {
		t.Errorf("other user should survive: %v", err)
	}
}
