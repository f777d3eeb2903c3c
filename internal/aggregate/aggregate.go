// Package aggregate derives summary and chart series from a loaded page of
// transactions. Everything is pure: the scope is whatever slice the caller
// currently has materialized, not the full dataset.
package aggregate

import (
	"sort"
	"time"

	"tally/internal/core"
)

// Summary holds the headline totals for the loaded transactions.
type Summary struct {
	TotalIncome   core.Money
	TotalExpenses core.Money
	Balance       core.Money
}

// Summarize sums income and expense magnitudes separately; the balance is
// income minus expenses and may be negative.
func Summarize(txs []core.Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			s.TotalIncome.Cents += t.Amount.Cents
		case core.Expense:
			s.TotalExpenses.Cents += t.Amount.Cents
		}
	}
	s.Balance.Cents = s.TotalIncome.Cents - s.TotalExpenses.Cents
	return s
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    core.Money
}

// CategoryBreakdown groups expense transactions by category and sums per
// group, sorted by descending total. Income transactions are ignored.
func CategoryBreakdown(txs []core.Transaction) []CategoryTotal {
	byCategory := make(map[string]int64)
	for _, t := range txs {
		if t.Type == core.Expense {
			byCategory[t.Category] += t.Amount.Cents
		}
	}
	if len(byCategory) == 0 {
		return nil
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for name, cents := range byCategory {
		out = append(out, CategoryTotal{Category: name, Total: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// MonthBucket carries the income and expense sums for one calendar month.
type MonthBucket struct {
	Year    int
	Month   time.Month
	Label   string // e.g. "Mar 2025"
	Income  core.Money
	Expense core.Money
}

// MonthlySeries buckets transactions per calendar month across the inclusive
// range spanning the earliest to the latest transaction date. Months with no
// transactions appear with zero sums; empty input yields an empty series.
func MonthlySeries(txs []core.Transaction) []MonthBucket {
	if len(txs) == 0 {
		return nil
	}

	min, max := txs[0].Date, txs[0].Date
	for _, t := range txs[1:] {
		if t.Date.Before(min) {
			min = t.Date
		}
		if t.Date.After(max) {
			max = t.Date
		}
	}

	type key struct {
		year  int
		month time.Month
	}
	sums := make(map[key]*MonthBucket)
	var series []MonthBucket

	start := time.Date(min.Year(), min.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(max.Year(), max.Month(), 1, 0, 0, 0, 0, time.UTC)
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		series = append(series, MonthBucket{
			Year:  cur.Year(),
			Month: cur.Month(),
			Label: cur.Format("Jan 2006"),
		})
	}
	for i := range series {
		sums[key{series[i].Year, series[i].Month}] = &series[i]
	}

	for _, t := range txs {
		b := sums[key{t.Date.Year(), t.Date.Month()}]
		if b == nil {
			continue
		}
		switch t.Type {
		case core.Income:
			b.Income.Cents += t.Amount.Cents
		case core.Expense:
			b.Expense.Cents += t.Amount.Cents
		}
	}

	return series
}
