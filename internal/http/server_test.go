package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paydash/internal/core"
	"paydash/internal/log"
	"paydash/internal/service"
	"paydash/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := service.NewExpenseService(memory.New(), nil, log.New(log.Config{Level: slog.LevelError}))
	s := NewServer(":0", svc)
	t.Cleanup(func() { s.rateLimiter.stop() })
	return s
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(t, s, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
	}
}

func TestListCategories(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var cats []core.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatal(err)
	}
	if len(cats) != 12 {
		t.Fatalf("expected 12 seeded categories, got %d", len(cats))
	}
	if cats[0].ID != "cat-0" || cats[0].Name != "Food & Dining" {
		t.Fatalf("unexpected first category %+v", cats[0])
	}
}

func TestCreateAndListExpense(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/expenses",
		`{"amount": 42.5, "description": "  lunch  ", "category_id": "cat-0", "expense_date": "2024-03-10"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var created core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("created expense has no id")
	}
	if created.Amount != 42.5 || created.Currency != "USD" {
		t.Fatalf("unexpected created row %+v", created)
	}
	if created.Description != "lunch" {
		t.Fatalf("description = %q, want trimmed", created.Description)
	}
	if created.CategoryName != "Food & Dining" {
		t.Fatalf("category name = %q", created.CategoryName)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/expenses", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var list []core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("unexpected listing %+v", list)
	}
}

func TestCreateExpenseInvalidInput(t *testing.T) {
	s := newTestServer(t)

	bodies := []string{
		`{"amount": 0, "category_id": "cat-0", "expense_date": "2024-03-10"}`,
		`{"amount": -5, "category_id": "cat-0", "expense_date": "2024-03-10"}`,
		`{"amount": 10, "category_id": "", "expense_date": "2024-03-10"}`,
		`{"amount": 10, "category_id": "cat-0", "expense_date": ""}`,
		`{"amount": 10, "category_id": "cat-0", "expense_date": "not-a-date"}`,
		`not json`,
	}
	for i, body := range bodies {
		rec := doRequest(t, s, http.MethodPost, "/api/expenses", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: status %d, want 400", i, rec.Code)
		}
		var resp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if resp.Error != invalidInputMessage {
			t.Fatalf("case %d: error = %q", i, resp.Error)
		}
	}

	// Nothing was written.
	rec := doRequest(t, s, http.MethodGet, "/api/expenses", "")
	var list []core.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected requests must not write, got %d rows", len(list))
	}
}

func TestListExpensesFiltered(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"amount": 100, "category_id": "cat-0", "expense_date": "2024-01-10"}`,
		`{"amount": 800, "category_id": "cat-0", "expense_date": "2024-02-10"}`,
		`{"amount": 100, "category_id": "cat-9", "expense_date": "2024-01-20"}`,
	} {
		if rec := doRequest(t, s, http.MethodPost, "/api/expenses", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"no filter", "/api/expenses", 3},
		{"by category", "/api/expenses?category_id=cat-0", 2},
		{"by amount bracket", "/api/expenses?amount_range=501-3000", 1},
		{"by date range", "/api/expenses?start_date=2024-01-01&end_date=2024-01-31", 2},
		{"conjunctive", "/api/expenses?category_id=cat-0&start_date=2024-01-01&end_date=2024-01-31", 1},
		{"no match is empty array", "/api/expenses?category_id=cat-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodGet, tt.target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status %d", rec.Code)
			}
			var list []core.Expense
			if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
				t.Fatal(err)
			}
			if len(list) != tt.want {
				t.Fatalf("got %d rows, want %d", len(list), tt.want)
			}
			if !strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "[") {
				t.Fatal("listing must serialize as a JSON array")
			}
		})
	}
}

func TestSummary(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"amount": 10, "category_id": "cat-0", "expense_date": "2024-01-10"}`,
		`{"amount": 5, "category_id": "cat-0", "expense_date": "2024-01-11"}`,
		`{"amount": 40, "category_id": "cat-9", "expense_date": "2024-01-12"}`,
	} {
		if rec := doRequest(t, s, http.MethodPost, "/api/expenses", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed failed: %d", rec.Code)
		}
	}

	rec := doRequest(t, s, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var rows []core.CategorySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(rows))
	}
	if rows[0].CategoryName != "Travel" || rows[0].Total != 40 || rows[0].Count != 1 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].CategoryName != "Food & Dining" || rows[1].Total != 15 || rows[1].Count != 2 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}

	// Summary honors the same filters as the listing.
	rec = doRequest(t, s, http.MethodGet, "/api/summary?category_id=cat-0", "")
	rows = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].CategoryName != "Food & Dining" {
		t.Fatalf("unexpected filtered summary %+v", rows)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method, target string
	}{
		{http.MethodDelete, "/api/expenses"},
		{http.MethodPost, "/api/categories"},
		{http.MethodPost, "/api/summary"},
	}
	for _, tt := range tests {
		rec := doRequest(t, s, tt.method, tt.target, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: status %d", tt.method, tt.target, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/categories", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options = %q", got)
	}
}
