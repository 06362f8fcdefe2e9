// Package store defines the record-store capability set shared by every
// backing variant, plus the error type surfaced when a variant fails.
package store

import (
	"context"
	"fmt"

	"paydash/internal/core"
)

// Store owns category and expense records. Implementations must apply filter
// dimensions conjunctively and return expenses newest-first.
type Store interface {
	// ListCategories returns all categories. The relational variants order
	// alphabetically; the memory variant keeps insertion order.
	ListCategories(ctx context.Context) ([]core.Category, error)

	// ListExpenses returns the expenses matching every set filter dimension,
	// ordered by creation time descending. An empty result is not an error.
	ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error)

	// CreateExpense appends one record and returns it with a server-assigned
	// id, the fixed currency, the creation timestamp, and the resolved
	// category name. Input is assumed validated and normalized.
	CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
}

// Error wraps a backing-store failure. It maps to HTTP 500 at the boundary;
// the cause is logged, never exposed to clients. Every store failure is
// terminal for its request: no retries, no partial results.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap annotates err with the failed operation. Returns nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
