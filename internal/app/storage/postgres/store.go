// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-app/fintrack/internal/app/domain/category"
	"github.com/fintrack-app/fintrack/internal/app/domain/transaction"
	"github.com/fintrack-app/fintrack/internal/app/domain/user"
	"github.com/fintrack-app/fintrack/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.CategoryStore = (*Store)(nil)
var _ storage.TransactionStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- UserStore --------------------------------------------------------------

func (s *Store) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	existing, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}

	u.CreatedAt = existing.CreatedAt
	u.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, email = $3, password_hash = $4, updated_at = $5
		WHERE id = $1
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.UpdatedAt)
	if err != nil {
		return user.User{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return user.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM users WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// --- CategoryStore ----------------------------------------------------------

func (s *Store) CreateCategory(ctx context.Context, c category.Category) (category.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, title, description, icon, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.UserID, c.Title, c.Description, c.Icon, c.Color, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return category.Category{}, err
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c category.Category) (category.Category, error) {
	existing, err := s.GetCategory(ctx, c.ID, c.UserID)
	if err != nil {
		return category.Category{}, err
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET title = $3, description = $4, icon = $5, color = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2
	`, c.ID, c.UserID, c.Title, c.Description, c.Icon, c.Color, c.UpdatedAt)
	if err != nil {
		return category.Category{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return category.Category{}, storage.ErrNotFound
	}
	return c, nil
}

func (s *Store) GetCategory(ctx context.Context, id, userID string) (category.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, icon, color, created_at, updated_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanCategory(row)
}

func (s *Store) GetCategoryByTitle(ctx context.Context, userID, title string) (category.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, icon, color, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND title = $2
	`, userID, title)
	return scanCategory(row)
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]category.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, icon, color, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Icon, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (s *Store) DeleteCategory(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCategory(row *sql.Row) (category.Category, error) {
	var c category.Category
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &c.Icon, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.Category{}, storage.ErrNotFound
		}
		return category.Category{}, err
	}
	return c, nil
}

// --- TransactionStore -------------------------------------------------------

func (s *Store) CreateTransaction(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, description, transaction_type, date, value, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, tx.ID, tx.UserID, tx.Description, tx.Type, tx.Date, tx.Value, tx.CategoryID, tx.CreatedAt, tx.UpdatedAt)
	if err != nil {
		return transaction.Transaction{}, err
	}
	return tx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error) {
	existing, err := s.GetTransaction(ctx, tx.ID, tx.UserID)
	if err != nil {
		return transaction.Transaction{}, err
	}

	tx.CreatedAt = existing.CreatedAt
	tx.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET description = $3, transaction_type = $4, date = $5, value = $6, category_id = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2
	`, tx.ID, tx.UserID, tx.Description, tx.Type, tx.Date, tx.Value, tx.CategoryID, tx.UpdatedAt)
	if err != nil {
		return transaction.Transaction{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return transaction.Transaction{}, storage.ErrNotFound
	}
	return tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id, userID string) (transaction.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, description, transaction_type, date, value, category_id, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	var tx transaction.Transaction
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Type, &tx.Date, &tx.Value, &tx.CategoryID, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.Transaction{}, storage.ErrNotFound
		}
		return transaction.Transaction{}, err
	}
	return tx, nil
}

// ListTransactions builds a single WHERE clause from the filter: each
// optional predicate is appended only when its input is present.
func (s *Store) ListTransactions(ctx context.Context, f transaction.Filter) ([]transaction.Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{f.UserID}

	if f.Description != "" {
		args = append(args, "%"+f.Description+"%")
		conditions = append(conditions, fmt.Sprintf("description LIKE $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		conditions = append(conditions, fmt.Sprintf("transaction_type = $%d", len(args)))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.DatePrefix != "" {
		args = append(args, f.DatePrefix+"%")
		conditions = append(conditions, fmt.Sprintf("date LIKE $%d", len(args)))
	}

	query := `
		SELECT id, user_id, description, transaction_type, date, value, category_id, created_at, updated_at
		FROM transactions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []transaction.Transaction
	for rows.Next() {
		var tx transaction.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Description, &tx.Type, &tx.Date, &tx.Value, &tx.CategoryID, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (s *Store) DeleteTransaction(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) CountTransactionsByCategory(ctx context.Context, categoryID, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions WHERE category_id = $1 AND user_id = $2
	`, categoryID, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) SumTransactionsByType(ctx context.Context, userID string, t transaction.Type) (float64, error) {
	var sum float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(value), 0) FROM transactions WHERE user_id = $1 AND transaction_type = $2
	`, userID, t).Scan(&sum)
	if err != nil {
		return 0, err
	}
	return sum, nil
}
