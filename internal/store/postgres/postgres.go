// Package postgres provides the persistent record-store variant backed by a
// PostgreSQL service. Concurrency control is delegated entirely to the
// database; the store holds no local locks.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"paydash/internal/core"
	"paydash/internal/store"
)

// expenseColumns is the projection shared by list and create. Dates and
// timestamps come back as ISO strings; the category name joins in with the
// fallback applied at the database.
const expenseColumns = `e.id::text,
	e.amount,
	e.currency,
	e.description,
	to_char(e.expense_date, 'YYYY-MM-DD'),
	to_char(e.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.MS"Z"'),
	COALESCE(e.category_id::text, ''),
	COALESCE(c.name, 'Other')`

type Store struct {
	pool   *pgxpool.Pool
	userID string
}

// New connects to the database service. The service key, when set, overrides
// the password in the connection URL so the two credentials can be configured
// independently.
func New(ctx context.Context, databaseURL, serviceKey, demoUserID string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if serviceKey != "" {
		cfg.ConnConfig.Password = serviceKey
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool, userID: demoUserID}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// ListCategories returns the demo user's categories, alphabetically.
func (s *Store) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, name FROM expense_categories WHERE user_id = $1 ORDER BY name`,
		s.userID)
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

// ListExpenses builds the conjunctive filter query: each clause is added only
// when its filter dimension is set. Results come back newest-first.
func (s *Store) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + expenseColumns + `
FROM expenses e
LEFT JOIN expense_categories c ON c.id = e.category_id
WHERE e.user_id = $1`)
	args := []any{s.userID}

	add := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&b, clause, len(args))
	}
	if f.CategoryID != "" {
		add(" AND e.category_id = $%d", f.CategoryID)
	}
	if f.StartDate != "" {
		add(" AND e.expense_date >= $%d", f.StartDate)
	}
	if f.EndDate != "" {
		add(" AND e.expense_date <= $%d", f.EndDate)
	}
	if f.MinAmount != nil {
		add(" AND e.amount >= $%d", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		add(" AND e.amount <= $%d", *f.MaxAmount)
	}
	b.WriteString(" ORDER BY e.created_at DESC")

	rows, err := s.pool.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, store.Wrap("list expenses", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, store.Wrap("scan expense", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list expenses", err)
	}
	return out, nil
}

// CreateExpense inserts the record and reads it back through the category
// join so the returned row carries the resolved display name.
func (s *Store) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO expenses (id, user_id, category_id, amount, currency, description, expense_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, s.userID, in.CategoryID, in.Amount, core.DefaultCurrency, in.Description, in.ExpenseDate)
	if err != nil {
		return core.Expense{}, store.Wrap("insert expense", err)
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+expenseColumns+`
FROM expenses e
LEFT JOIN expense_categories c ON c.id = e.category_id
WHERE e.id = $1`, id)
	e, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, store.Wrap("read created expense", err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	err := row.Scan(&e.ID, &e.Amount, &e.Currency, &e.Description,
		&e.ExpenseDate, &e.CreatedAt, &e.CategoryID, &e.CategoryName)
	return e, err
}
