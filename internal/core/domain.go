package core

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// DefaultCurrency is the fixed currency code stamped on every expense.
	DefaultCurrency = "USD"

	// BlankDescription is stored when a description trims down to nothing.
	BlankDescription = "—"

	// FallbackCategoryName labels rows whose category cannot be resolved.
	FallbackCategoryName = "Other"

	// DateLayout is the calendar-date format used for expense_date values.
	DateLayout = "2006-01-02"

	// TimestampLayout formats created_at values with fixed-width fractional
	// seconds so that lexicographic order matches chronological order.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type (
	// Category is a spending category. Categories are seeded at store
	// initialization and are effectively immutable afterwards.
	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// Expense is a normalized expense row: the stored record enriched with
	// its resolved category display name.
	Expense struct {
		ID           string  `json:"id"`
		Amount       float64 `json:"amount"`
		Currency     string  `json:"currency"`
		Description  string  `json:"description"`
		ExpenseDate  string  `json:"expense_date"`
		CreatedAt    string  `json:"created_at"`
		CategoryID   string  `json:"category_id"`
		CategoryName string  `json:"category_name"`
	}

	// ExpenseInput carries the caller-supplied fields of a new expense.
	ExpenseInput struct {
		Amount      float64 `json:"amount"`
		Description string  `json:"description"`
		CategoryID  string  `json:"category_id"`
		ExpenseDate string  `json:"expense_date"`
	}
)

// ValidationError reports caller input that violates the create-expense
// contract. It maps to HTTP 400 at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize trims free-text fields and substitutes the blank-description
// placeholder. Call before Validate.
func (in ExpenseInput) Normalize() ExpenseInput {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		in.Description = BlankDescription
	}
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ExpenseDate = strings.TrimSpace(in.ExpenseDate)
	return in
}

func (in ExpenseInput) Validate() error {
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be a positive number"}
	}
	if in.CategoryID == "" {
		return &ValidationError{Field: "category_id", Reason: "must not be empty"}
	}
	if in.ExpenseDate == "" {
		return &ValidationError{Field: "expense_date", Reason: "must not be empty"}
	}
	if _, err := time.Parse(DateLayout, in.ExpenseDate); err != nil {
		return &ValidationError{Field: "expense_date", Reason: "must be a calendar date in YYYY-MM-DD form"}
	}
	return nil
}
