// Package memory provides the process-lifetime record store used when no
// relational backend is configured. Data does not survive a restart; this is
// a documented limitation of the development fallback, not a defect. The
// store is single-process and best-effort: a mutex keeps the containers
// internally consistent, nothing more.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"paydash/internal/core"
)

// DefaultCategoryNames seeds the store at construction. Ids are assigned
// positionally: cat-0 through cat-11.
var DefaultCategoryNames = []string{
	"Food & Dining",
	"Groceries",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Health",
	"Personal Care",
	"Subscriptions",
	"Travel",
	"Education",
	"Other",
}

type Store struct {
	mu    sync.Mutex
	cats  []core.Category
	items []core.Expense
	now   func() time.Time
}

func New() *Store {
	s := &Store{now: time.Now}
	for i, name := range DefaultCategoryNames {
		s.cats = append(s.cats, core.Category{ID: fmt.Sprintf("cat-%d", i), Name: name})
	}
	return s
}

// ListCategories returns the seeded categories in insertion order.
func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.cats...), nil
}

// ListExpenses applies the filter in-process and sorts newest-first.
// CreatedAt strings are fixed-width, so string comparison orders the same as
// chronological order.
func (s *Store) ListExpenses(_ context.Context, f core.Filter) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.items))
	for _, e := range s.items {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

// CreateExpense appends one record, resolving the category name locally and
// defaulting to the fallback name when the id matches no seeded category.
func (s *Store) CreateExpense(_ context.Context, in core.ExpenseInput) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := core.Expense{
		ID:           nextID(s.now()),
		Amount:       in.Amount,
		Currency:     core.DefaultCurrency,
		Description:  in.Description,
		ExpenseDate:  in.ExpenseDate,
		CreatedAt:    s.now().UTC().Format(core.TimestampLayout),
		CategoryID:   in.CategoryID,
		CategoryName: s.categoryName(in.CategoryID),
	}
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) categoryName(id string) string {
	for _, c := range s.cats {
		if c.ID == id {
			return c.Name
		}
	}
	return core.FallbackCategoryName
}

func nextID(now time.Time) string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("exp-%d-%s", now.UnixMilli(), hex.EncodeToString(buf))
}
