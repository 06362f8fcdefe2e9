// Package service orchestrates expense operations between the HTTP boundary
// and the record store.
package service

import (
	"context"

	"paydash/internal/core"
	"paydash/internal/events"
	"paydash/internal/log"
	"paydash/internal/store"
)

// Publisher emits expense lifecycle events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishExpenseCreated(ctx context.Context, msg *events.ExpenseCreatedMessage) error
}

type ExpenseService struct {
	store     store.Store
	publisher Publisher // nil disables event publishing
	logger    *log.Logger
}

func NewExpenseService(st store.Store, pub Publisher, logger *log.Logger) *ExpenseService {
	return &ExpenseService{
		store:     st,
		publisher: pub,
		logger:    logger.WithComponent(log.ComponentService),
	}
}

// ListCategories passes through to the store.
func (s *ExpenseService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

// ListExpenses returns matching rows newest-first. An empty result is an
// empty, non-nil slice, never an error. Rows without a resolvable category
// name get the display fallback.
func (s *ExpenseService) ListExpenses(ctx context.Context, f core.Filter) ([]core.Expense, error) {
	items, err := s.store.ListExpenses(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]core.Expense, len(items))
	for i, e := range items {
		out[i] = normalize(e)
	}
	return out, nil
}

// CreateExpense validates and normalizes the input before any store
// interaction, so a rejected request never causes a partial write. On success
// the created row is returned and, when a publisher is configured, an
// expense-created event goes out; publish failures are logged and never fail
// the request.
func (s *ExpenseService) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return core.Expense{}, err
	}

	e, err := s.store.CreateExpense(ctx, in)
	if err != nil {
		return core.Expense{}, err
	}
	e = normalize(e)

	if s.publisher != nil {
		if perr := s.publisher.PublishExpenseCreated(ctx, events.NewExpenseCreatedMessage(e)); perr != nil {
			s.logger.ErrorContext(ctx, "Failed to publish expense created event",
				"error", perr, "id", e.ID)
		}
	}

	s.logger.InfoContext(ctx, "Expense created",
		"id", e.ID, "amount", e.Amount, "category", e.CategoryName)
	return e, nil
}

// SummarizeExpenses reduces the filtered rows to per-category totals. The
// reduction is recomputed on every call; nothing is cached.
func (s *ExpenseService) SummarizeExpenses(ctx context.Context, f core.Filter) ([]core.CategorySummary, error) {
	items, err := s.ListExpenses(ctx, f)
	if err != nil {
		return nil, err
	}
	return core.SummarizeByCategory(items), nil
}

func normalize(e core.Expense) core.Expense {
	if e.CategoryName == "" {
		e.CategoryName = core.FallbackCategoryName
	}
	if e.Currency == "" {
		e.Currency = core.DefaultCurrency
	}
	return e
}
