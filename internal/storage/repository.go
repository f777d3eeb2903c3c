// Package storage persists transactions in SQLite. The repository translates
// the query package's filter/sort/window shapes into SQL; range scans are
// backed by the (type,date), (category) and (date) indexes created by the
// embedded migrations.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/query"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("transaction not found")
	ErrConflict = errors.New("duplicate entry")
)

// timeLayout is a fixed-width UTC layout, so stored timestamps compare
// lexicographically in range scans and ORDER BY.
const timeLayout = "2006-01-02T15:04:05.000Z"

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable. Used by the readiness probe.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Insert persists a new transaction and returns it with the generated id and
// store-managed timestamps.
func (r *Repository) Insert(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	tx.CreatedAt = now
	tx.UpdatedAt = now

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (type, amount_cents, category, description, date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(tx.Type), tx.Amount.Cents, tx.Category, tx.Description,
		fmtTime(tx.Date), fmtTime(tx.CreatedAt), fmtTime(tx.UpdatedAt))
	if err != nil {
		return core.Transaction{}, mapErr("insert transaction", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction id: %w", err)
	}
	tx.ID = id
	tx.Date = tx.Date.UTC().Truncate(time.Millisecond)

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return tx, nil
}

// GetByID returns the single matching record or ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, type, amount_cents, category, description, date, created_at, updated_at
		 FROM transactions WHERE id = ?`, id)
	return scanTransaction(row)
}

// Update rewrites the full record and bumps updated_at. created_at is never
// touched. Returns ErrNotFound when the id has no match.
func (r *Repository) Update(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, amount_cents = ?, category = ?, description = ?, date = ?, updated_at = ?
		 WHERE id = ?`,
		string(tx.Type), tx.Amount.Cents, tx.Category, tx.Description,
		fmtTime(tx.Date), fmtTime(now), tx.ID)
	if err != nil {
		return core.Transaction{}, mapErr("update transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction rows: %w", err)
	}
	if n == 0 {
		return core.Transaction{}, ErrNotFound
	}

	return r.GetByID(ctx, tx.ID)
}

// Delete removes the record physically and returns it as confirmation.
func (r *Repository) Delete(ctx context.Context, id int64) (core.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, type, amount_cents, category, description, date, created_at, updated_at
		 FROM transactions WHERE id = ?`, id)
	deleted, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return core.Transaction{}, mapErr("delete transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Transaction{}, fmt.Errorf("commit delete: %w", err)
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return deleted, nil
}

// List returns the window of transactions matching the filter in the given
// order.
func (r *Repository) List(ctx context.Context, f query.Filter, o query.Order, w query.Window) ([]core.Transaction, error) {
	where, args := whereClause(f)
	q := `SELECT id, type, amount_cents, category, description, date, created_at, updated_at
		 FROM transactions` + where + orderClause(o) + ` LIMIT ? OFFSET ?`
	args = append(args, w.Limit, w.Skip)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}
	return out, nil
}

// Count returns the number of transactions matching the filter.
func (r *Repository) Count(ctx context.Context, f query.Filter) (int, error) {
	where, args := whereClause(f)
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// whereClause builds the AND-composed predicate for a filter. Absent criteria
// add no condition.
func whereClause(f query.Filter) (string, []any) {
	var conds []string
	var args []any

	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.Category != "" {
		// Case-insensitive substring match, not exact equality.
		conds = append(conds, "instr(lower(category), lower(?)) > 0")
		args = append(args, f.Category)
	}
	if !f.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, fmtTime(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, fmtTime(f.To))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(o query.Order) string {
	col := "created_at"
	switch o.Field {
	case query.SortByDate:
		col = "date"
	case query.SortByAmount:
		col = "amount_cents"
	}
	dir := "ASC"
	if o.Desc {
		dir = "DESC"
	}
	// Secondary id ordering keeps results deterministic when the sort column
	// has duplicates.
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (core.Transaction, error) {
	var t core.Transaction
	var typ, date, created, updated string
	err := s.Scan(&t.ID, &typ, &t.Amount.Cents, &t.Category, &t.Description, &date, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Type = core.TransactionType(typ)
	if t.Date, err = parseTime(date); err != nil {
		return core.Transaction{}, fmt.Errorf("parse date column: %w", err)
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at column: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return core.Transaction{}, fmt.Errorf("parse updated_at column: %w", err)
	}
	return t, nil
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func mapErr(op string, err error) error {
	if strings.Contains(err.Error(), "constraint") {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
