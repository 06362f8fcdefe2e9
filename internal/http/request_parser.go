package http

import (
	"net/url"
	"strings"

	"paydash/internal/core"
)

// parseFilter reads the listing filters from the query string. Filters are
// conjunctive; unknown or empty parameters are ignored.
//
//	category_id  — category id, exact match
//	start_date   — inclusive lower bound, YYYY-MM-DD
//	end_date     — inclusive upper bound, YYYY-MM-DD
//	amount_range — bracket token: 0-500, 501-3000, 3000+
func parseFilter(query url.Values) core.Filter {
	f := core.Filter{
		CategoryID: sanitizeParam(query.Get("category_id")),
		StartDate:  sanitizeParam(query.Get("start_date")),
		EndDate:    sanitizeParam(query.Get("end_date")),
	}
	f.MinAmount, f.MaxAmount = core.DecodeAmountRange(sanitizeParam(query.Get("amount_range")))
	return f
}

// sanitizeParam trims whitespace and strips control characters from a query
// parameter before it reaches the store layer.
func sanitizeParam(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
