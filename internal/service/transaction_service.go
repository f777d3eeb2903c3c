// Package service orchestrates transaction operations: boundary validation,
// store access through the query contract, and change-event publishing.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/core"
	"tally/internal/query"
	"tally/internal/storage"
)

// EventPublisher notifies downstream consumers about writes. Optional; a nil
// publisher disables events without failing requests.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, id int64, action string) error
}

type TransactionService struct {
	repo   *storage.Repository
	events EventPublisher
}

func NewTransactionService(repo *storage.Repository, events EventPublisher) *TransactionService {
	return &TransactionService{repo: repo, events: events}
}

// Ping reports whether the backing store is reachable.
func (s *TransactionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// List returns the page of transactions matching the criteria plus pagination
// metadata. Count and fetch are two independent reads run concurrently; under
// concurrent writes the total and the page may disagree by the writes in that
// window, which is acceptable for this domain.
func (s *TransactionService) List(ctx context.Context, c query.Criteria) ([]core.Transaction, query.Pagination, error) {
	filter := query.BuildFilter(c)
	order := query.BuildSort(c.Sort)
	window := query.NewWindow(c.Page, c.Limit)

	var (
		items []core.Transaction
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, filter, order, window)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, query.Pagination{}, fmt.Errorf("list transactions: %w", err)
	}

	return items, query.Paginate(c.Page, c.Limit, total), nil
}

// Get returns the transaction with the given id. A malformed id is a
// not-found condition, never a server fault.
func (s *TransactionService) Get(ctx context.Context, id string) (core.Transaction, error) {
	n, err := parseID(id)
	if err != nil {
		return core.Transaction{}, storage.ErrNotFound
	}
	return s.repo.GetByID(ctx, n)
}

// Create validates the full record and persists it.
func (s *TransactionService) Create(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	tx, fieldErrs := in.apply(core.Transaction{})
	if len(fieldErrs) > 0 {
		return core.Transaction{}, newValidationError(fieldErrs)
	}

	saved, err := s.repo.Insert(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, saved.ID, amqp.ActionCreated)
	return saved, nil
}

// Update merges the input into the existing record, re-validates the merged
// record in full, and persists it.
func (s *TransactionService) Update(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	n, err := parseID(id)
	if err != nil {
		return core.Transaction{}, storage.ErrNotFound
	}

	existing, err := s.repo.GetByID(ctx, n)
	if err != nil {
		return core.Transaction{}, err
	}

	merged, fieldErrs := in.apply(existing)
	if len(fieldErrs) > 0 {
		return core.Transaction{}, newValidationError(fieldErrs)
	}

	updated, err := s.repo.Update(ctx, merged)
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, updated.ID, amqp.ActionUpdated)
	return updated, nil
}

// Delete removes the record physically and returns it as confirmation.
func (s *TransactionService) Delete(ctx context.Context, id string) (core.Transaction, error) {
	n, err := parseID(id)
	if err != nil {
		return core.Transaction{}, storage.ErrNotFound
	}

	deleted, err := s.repo.Delete(ctx, n)
	if err != nil {
		return core.Transaction{}, err
	}

	s.publish(ctx, deleted.ID, amqp.ActionDeleted)
	return deleted, nil
}

// publish sends a change event. Publish failures are logged, not surfaced:
// the write already succeeded locally.
func (s *TransactionService) publish(ctx context.Context, id int64, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", id, "action", action, "error", err)
	}
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("malformed id %q", id)
	}
	return n, nil
}
