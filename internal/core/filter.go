package core

// Filter narrows an expense listing. Zero values mean "no constraint on that
// dimension". Filters are request-scoped and never persisted.
type Filter struct {
	CategoryID string
	StartDate  string // inclusive, YYYY-MM-DD
	EndDate    string // inclusive, YYYY-MM-DD
	MinAmount  *float64
	MaxAmount  *float64
}

// Amount bracket tokens accepted by DecodeAmountRange.
const (
	AmountRangeLow  = "0-500"
	AmountRangeMid  = "501-3000"
	AmountRangeHigh = "3000+"
)

// DecodeAmountRange maps an amount bracket token to an inclusive [min, max]
// pair. The table is closed: unrecognized tokens, including the empty string,
// yield no bounds rather than an error.
func DecodeAmountRange(token string) (min, max *float64) {
	switch token {
	case AmountRangeLow:
		return amountPtr(0), amountPtr(500)
	case AmountRangeMid:
		return amountPtr(501), amountPtr(3000)
	case AmountRangeHigh:
		return amountPtr(3001), nil
	default:
		return nil, nil
	}
}

func amountPtr(v float64) *float64 { return &v }

// Matches reports whether the expense satisfies every set filter dimension.
// Dimensions combine conjunctively. Dates compare as ISO strings, which
// orders the same as calendar order.
func (f Filter) Matches(e Expense) bool {
	if f.CategoryID != "" && e.CategoryID != f.CategoryID {
		return false
	}
	if f.StartDate != "" && e.ExpenseDate < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.ExpenseDate > f.EndDate {
		return false
	}
	if f.MinAmount != nil && e.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
		return false
	}
	return true
}

// IsZero reports whether no dimension is constrained.
func (f Filter) IsZero() bool {
	return f.CategoryID == "" && f.StartDate == "" && f.EndDate == "" &&
		f.MinAmount == nil && f.MaxAmount == nil
}
