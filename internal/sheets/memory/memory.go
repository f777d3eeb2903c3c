// Package memory is an in-process RowWriter used in tests and local runs
// without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	"tally/internal/core"
	ports "tally/internal/sheets"
)

type Row struct {
	Transaction core.Transaction
	Action      string
}

type Writer struct {
	mu   sync.Mutex
	rows []Row
}

var _ ports.RowWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) AppendRow(ctx context.Context, tx core.Transaction, action string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.rows = append(w.rows, Row{Transaction: tx, Action: action})
	return fmt.Sprintf("mem:%d", len(w.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (w *Writer) Rows() []Row {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Row, len(w.rows))
	copy(out, w.rows)
	return out
}
