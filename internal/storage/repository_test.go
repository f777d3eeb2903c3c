package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/core"
	"tally/internal/query"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "tally.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seed(t *testing.T, repo *Repository, txs ...core.Transaction) []core.Transaction {
	t.Helper()
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		saved, err := repo.Insert(context.Background(), tx)
		if err != nil {
			t.Fatalf("seed insert: %v", err)
		}
		out = append(out, saved)
	}
	return out
}

func tx(typ core.TransactionType, cents int64, category string, date time.Time) core.Transaction {
	return core.Transaction{Type: typ, Amount: core.Money{Cents: cents}, Category: category, Date: date}
}

func day(d int) time.Time {
	return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
}

func TestInsertAssignsIDAndTimestamps(t *testing.T) {
	repo := newTestRepo(t)
	saved := seed(t, repo, tx(core.Income, 10000, "Salary", day(1)))[0]
	if saved.ID == 0 {
		t.Fatal("expected generated id")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatal("expected store-managed timestamps")
	}
}

func TestGetByIDRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	in := core.Transaction{
		Type:        core.Expense,
		Amount:      core.Money{Cents: 4050},
		Category:    "Food",
		Description: "dinner out",
		Date:        time.Date(2025, 3, 5, 19, 45, 0, 0, time.UTC),
	}
	saved := seed(t, repo, in)[0]

	got, err := repo.GetByID(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Type != in.Type || got.Amount != in.Amount || got.Category != in.Category || got.Description != in.Description {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Date.Equal(in.Date) {
		t.Fatalf("date = %v, want %v", got.Date, in.Date)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetByID(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFilterComposition(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		tx(core.Expense, 1000, "Food", day(1)),
		tx(core.Expense, 2000, "Transport", day(2)),
		tx(core.Income, 3000, "Food refund", day(3)),
	)
	ctx := context.Background()
	w := query.NewWindow(1, 20)

	// Both constraints compose with AND.
	both, err := repo.List(ctx, query.Filter{Type: core.Expense, Category: "food"}, query.BuildSort(""), w)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(both) != 1 || both[0].Category != "Food" {
		t.Fatalf("type+category filter: got %+v", both)
	}

	// Dropping the type constraint widens the match (case-insensitive substring).
	catOnly, err := repo.List(ctx, query.Filter{Category: "FOOD"}, query.BuildSort(""), w)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(catOnly) != 2 {
		t.Fatalf("category-only filter: got %d, want 2", len(catOnly))
	}

	typeOnly, err := repo.Count(ctx, query.Filter{Type: core.Expense})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if typeOnly != 2 {
		t.Fatalf("type-only count = %d, want 2", typeOnly)
	}
}

func TestListDateRangeInclusive(t *testing.T) {
	repo := newTestRepo(t)
	// Late in the evening of March 10th.
	seed(t, repo, tx(core.Expense, 500, "Cinema", time.Date(2025, 3, 10, 23, 15, 0, 0, time.UTC)))

	c := query.Criteria{
		From: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	got, err := repo.List(context.Background(), query.BuildFilter(c), query.BuildSort(""), query.NewWindow(1, 20))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("transaction on the 'to' day must be included, got %d", len(got))
	}
}

func TestListSortOrders(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		tx(core.Expense, 3000, "A", day(2)),
		tx(core.Expense, 1000, "B", day(3)),
		tx(core.Expense, 2000, "C", day(1)),
	)
	ctx := context.Background()
	w := query.NewWindow(1, 20)

	byAmount, err := repo.List(ctx, query.Filter{}, query.BuildSort("amount_asc"), w)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(byAmount); i++ {
		if byAmount[i].Amount.Cents < byAmount[i-1].Amount.Cents {
			t.Fatalf("amount_asc not non-decreasing: %+v", byAmount)
		}
	}

	byDate, err := repo.List(ctx, query.Filter{}, query.BuildSort("date_desc"), w)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i := 1; i < len(byDate); i++ {
		if byDate[i].Date.After(byDate[i-1].Date) {
			t.Fatalf("date_desc not non-increasing: %+v", byDate)
		}
	}

	// Fallback order is newest inserted first, regardless of date.
	byCreation, err := repo.List(ctx, query.Filter{}, query.BuildSort(""), w)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if byCreation[0].Category != "C" || byCreation[2].Category != "A" {
		t.Fatalf("creation order fallback wrong: %+v", byCreation)
	}
}

func TestListWindow(t *testing.T) {
	repo := newTestRepo(t)
	for d := 1; d <= 5; d++ {
		seed(t, repo, tx(core.Expense, int64(d*100), "W", day(d)))
	}
	got, err := repo.List(context.Background(), query.Filter{}, query.BuildSort("date_asc"), query.NewWindow(2, 2))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Amount.Cents != 300 || got[1].Amount.Cents != 400 {
		t.Fatalf("window page 2 of 2: %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	saved := seed(t, repo, tx(core.Expense, 1000, "Food", day(1)))[0]

	saved.Amount = core.Money{Cents: 2500}
	saved.Category = "Dining"
	got, err := repo.Update(context.Background(), saved)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount.Cents != 2500 || got.Category != "Dining" {
		t.Fatalf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatalf("created_at must not change on update")
	}

	missing := saved
	missing.ID = 424242
	if _, err := repo.Update(context.Background(), missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteThenGet(t *testing.T) {
	repo := newTestRepo(t)
	saved := seed(t, repo, tx(core.Expense, 1000, "Food", day(1)))[0]

	deleted, err := repo.Delete(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != saved.ID || deleted.Amount != saved.Amount {
		t.Fatalf("delete must return the removed record: %+v", deleted)
	}

	if _, err := repo.GetByID(context.Background(), saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := repo.Delete(context.Background(), saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete must be ErrNotFound, got %v", err)
	}
}
