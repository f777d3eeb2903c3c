// Package worker turns transaction change events into spreadsheet audit rows.
package worker

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/amqp"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/sheets"
	"tally/internal/storage"
)

type ExportWorker struct {
	store  *storage.Repository
	rows   sheets.RowWriter
	logger *applog.Logger
}

func NewExportWorker(store *storage.Repository, rows sheets.RowWriter, logger *applog.Logger) *ExportWorker {
	return &ExportWorker{
		store:  store,
		rows:   rows,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleTransactionEvent exports one change event. Create and update events
// read the current record from the store; delete events export a tombstone
// row carrying only the id, since the record is already gone. A record
// missing for a create or update means a later delete won the race, so the
// event is dropped rather than requeued.
func (w *ExportWorker) HandleTransactionEvent(ctx context.Context, ev *amqp.TransactionEvent) error {
	w.logger.InfoContext(ctx, "processing event",
		applog.FieldTransactionID, ev.ID,
		applog.FieldAction, ev.Action)

	tx := core.Transaction{ID: ev.ID}
	if ev.Action != amqp.ActionDeleted {
		var err error
		tx, err = w.store.GetByID(ctx, ev.ID)
		if errors.Is(err, storage.ErrNotFound) {
			w.logger.Warn("record gone before export, dropping event",
				applog.FieldTransactionID, ev.ID,
				applog.FieldAction, ev.Action)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load transaction %d: %w", ev.ID, err)
		}
	}

	ref, err := w.rows.AppendRow(ctx, tx, ev.Action)
	if err != nil {
		return fmt.Errorf("append audit row: %w", err)
	}

	w.logger.InfoContext(ctx, "event exported",
		applog.FieldTransactionID, ev.ID,
		applog.FieldAction, ev.Action,
		"sheets_ref", ref)

	return nil
}
