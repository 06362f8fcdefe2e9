// Package sqlite provides a local-file persistent record-store variant for
// single-host deployments that have no database service configured but still
// want data to survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"paydash/internal/core"
	"paydash/internal/store"
)

const expenseColumns = `e.id, e.amount, e.currency, e.description,
	e.expense_date, e.created_at, e.category_id, COALESCE(c.name, 'Other')`

type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ListCategories returns categories alphabetically, matching the other
// persistent variant.
func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, store.Wrap("list categories", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, store.Wrap("scan category", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list categories", err)
	}
	return out, nil
}

// ListExpenses builds the conjunctive filter query with one clause per set
// filter dimension, newest-first. created_at strings are fixed-width, so the
// text ordering is chronological.
func (s *Store) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + expenseColumns + `
FROM expenses e
LEFT JOIN expense_categories c ON c.id = e.category_id
WHERE 1 = 1`)
	var args []any

	if f.CategoryID != "" {
		b.WriteString(" AND e.category_id = ?")
		args = append(args, f.CategoryID)
	}
	if f.StartDate != "" {
		b.WriteString(" AND e.expense_date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		b.WriteString(" AND e.expense_date <= ?")
		args = append(args, f.EndDate)
	}
	if f.MinAmount != nil {
		b.WriteString(" AND e.amount >= ?")
		args = append(args, *f.MinAmount)
	}
	if f.MaxAmount != nil {
		b.WriteString(" AND e.amount <= ?")
		args = append(args, *f.MaxAmount)
	}
	b.WriteString(" ORDER BY e.created_at DESC")

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, store.Wrap("list expenses", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Currency, &e.Description,
			&e.ExpenseDate, &e.CreatedAt, &e.CategoryID, &e.CategoryName); err != nil {
			return nil, store.Wrap("scan expense", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list expenses", err)
	}
	return out, nil
}

func (s *Store) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	e := core.Expense{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Currency:    core.DefaultCurrency,
		Description: in.Description,
		ExpenseDate: in.ExpenseDate,
		CreatedAt:   s.now().UTC().Format(core.TimestampLayout),
		CategoryID:  in.CategoryID,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, currency, description, category_id, expense_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Amount, e.Currency, e.Description, e.CategoryID, e.ExpenseDate, e.CreatedAt)
	if err != nil {
		return core.Expense{}, store.Wrap("insert expense", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COALESCE(name, 'Other') FROM expense_categories WHERE id = ?`,
		e.CategoryID).Scan(&e.CategoryName)
	if err == sql.ErrNoRows {
		e.CategoryName = core.FallbackCategoryName
	} else if err != nil {
		return core.Expense{}, store.Wrap("resolve category name", err)
	}
	return e, nil
}
