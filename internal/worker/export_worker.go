// Package worker runs the background export loop: it consumes
// expense-created events and appends each expense to the CSV audit file.
package worker

import (
	"context"

	"paydash/internal/events"
	"paydash/internal/export"
	"paydash/internal/log"
)

// Consumer delivers expense-created messages until the context is cancelled.
type Consumer interface {
	ConsumeExpenseCreated(ctx context.Context, handler func(*events.ExpenseCreatedMessage) error) error
}

type ExportWorker struct {
	consumer Consumer
	writer   *export.Writer
	logger   *log.Logger
}

func NewExportWorker(consumer Consumer, writer *export.Writer, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		consumer: consumer,
		writer:   writer,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until ctx is cancelled or the consumer fails. Append errors are
// returned to the consumer so the message is redelivered.
func (w *ExportWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Export worker started", "file", w.writer.Path())
	return w.consumer.ConsumeExpenseCreated(ctx, w.handle)
}

func (w *ExportWorker) handle(msg *events.ExpenseCreatedMessage) error {
	e := msg.Expense()
	if err := w.writer.Append(e); err != nil {
		w.logger.Error("Failed to append expense to export file", "error", err, "id", e.ID)
		return err
	}
	w.logger.Info("Exported expense", "id", e.ID, "amount", e.Amount, "category", e.CategoryName)
	return nil
}
