// Package export appends recorded expenses to a CSV file. The file is a
// best-effort audit trail fed by the expense-created event stream, not a
// replica of the record store.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"paydash/internal/core"
)

var header = []string{"id", "amount", "currency", "description", "category_id", "category_name", "expense_date", "created_at"}

// Writer appends one row per expense. Safe for concurrent use.
type Writer struct {
	mu   sync.Mutex
	path string
}

// NewWriter ensures the directory and header row exist.
func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := writeRow(path, header, os.O_CREATE|os.O_EXCL|os.O_WRONLY); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat export file: %w", err)
	}
	return &Writer{path: path}, nil
}

// Path returns the export file location.
func (w *Writer) Path() string {
	return w.path
}

// Append writes one expense row.
func (w *Writer) Append(e core.Expense) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	row := []string{
		e.ID,
		strconv.FormatFloat(e.Amount, 'f', 2, 64),
		e.Currency,
		e.Description,
		e.CategoryID,
		e.CategoryName,
		e.ExpenseDate,
		e.CreatedAt,
	}
	if err := writeRow(w.path, row, os.O_APPEND|os.O_CREATE|os.O_WRONLY); err != nil {
		return fmt.Errorf("append expense %s: %w", e.ID, err)
	}
	return nil
}

func writeRow(path string, row []string, flag int) error {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(row); err != nil {
		f.Close()
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
