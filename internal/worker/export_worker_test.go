package worker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"paydash/internal/core"
	"paydash/internal/events"
	"paydash/internal/export"
	"paydash/internal/log"
)

// fakeConsumer replays canned messages through the handler, then returns.
type fakeConsumer struct {
	messages []*events.ExpenseCreatedMessage
	handled  int
	errs     []error
}

func (f *fakeConsumer) ConsumeExpenseCreated(ctx context.Context, handler func(*events.ExpenseCreatedMessage) error) error {
	for _, msg := range f.messages {
		f.handled++
		f.errs = append(f.errs, handler(msg))
	}
	return ctx.Err()
}

func testLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError})
}

func TestExportWorkerAppendsConsumedExpenses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	writer, err := export.NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}

	consumer := &fakeConsumer{messages: []*events.ExpenseCreatedMessage{
		events.NewExpenseCreatedMessage(core.Expense{
			ID: "exp-1", Amount: 42.5, Currency: "USD", Description: "lunch",
			CategoryID: "cat-0", CategoryName: "Food & Dining",
			ExpenseDate: "2024-03-10", CreatedAt: "2024-03-10T12:00:00.000Z",
		}),
		events.NewExpenseCreatedMessage(core.Expense{
			ID: "exp-2", Amount: 9.99, Currency: "USD", Description: "—",
			CategoryID: "cat-8", CategoryName: "Subscriptions",
			ExpenseDate: "2024-03-11", CreatedAt: "2024-03-11T08:30:00.000Z",
		}),
	}}

	w := NewExportWorker(consumer, writer, testLogger())
	if err := w.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if consumer.handled != 2 {
		t.Fatalf("handled %d messages, want 2", consumer.handled)
	}
	for i, err := range consumer.errs {
		if err != nil {
			t.Fatalf("message %d: handler error %v", i, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "exp-1") || !strings.Contains(lines[1], "42.50") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "exp-2") || !strings.Contains(lines[2], "Subscriptions") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestExportWorkerReportsAppendFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	writer, err := export.NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	// Replace the file with a directory so the append fails.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	consumer := &fakeConsumer{messages: []*events.ExpenseCreatedMessage{
		events.NewExpenseCreatedMessage(core.Expense{ID: "exp-1", Amount: 1}),
	}}

	w := NewExportWorker(consumer, writer, testLogger())
	if err := w.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(consumer.errs) != 1 || consumer.errs[0] == nil {
		t.Fatal("append failure must be reported to the consumer for redelivery")
	}
	if errors.Is(consumer.errs[0], context.Canceled) {
		t.Fatalf("unexpected error kind: %v", consumer.errs[0])
	}
}
