// Package ui holds the dashboard's application state: the loaded transaction
// page, the active filters and the pagination position. The state is an
// explicit value mutated only through update functions that return the next
// state, never through ambient globals.
package ui

import (
	"tally/internal/core"
	"tally/internal/query"
)

// State is one snapshot of the dashboard.
type State struct {
	Transactions []core.Transaction
	Filters      query.Criteria
	Pagination   query.Pagination
	Err          string
}

// NewState returns the initial state: no transactions, first page, the
// dashboard's default newest-first date ordering.
func NewState() State {
	return State{
		Filters: query.Criteria{
			Sort:  "date_desc",
			Page:  query.DefaultPage,
			Limit: query.DefaultLimit,
		},
	}
}

// WithFilters replaces the active criteria.
func (s State) WithFilters(c query.Criteria) State {
	s.Filters = c
	return s
}

// ApplyFetched installs a freshly loaded page and clears any previous error.
func (s State) ApplyFetched(items []core.Transaction, p query.Pagination) State {
	s.Transactions = items
	s.Pagination = p
	s.Err = ""
	return s
}

// ApplyCreated prepends an optimistically created transaction and bumps the
// total; the next fetch reconciles ordering.
func (s State) ApplyCreated(tx core.Transaction) State {
	s.Transactions = append([]core.Transaction{tx}, s.Transactions...)
	s.Pagination.TotalItems++
	return s
}

// ApplyUpdated replaces the matching transaction in place.
func (s State) ApplyUpdated(tx core.Transaction) State {
	next := make([]core.Transaction, len(s.Transactions))
	copy(next, s.Transactions)
	for i := range next {
		if next[i].ID == tx.ID {
			next[i] = tx
			break
		}
	}
	s.Transactions = next
	return s
}

// ApplyDeleted removes the matching transaction and decrements the total.
func (s State) ApplyDeleted(id int64) State {
	next := make([]core.Transaction, 0, len(s.Transactions))
	removed := false
	for _, tx := range s.Transactions {
		if tx.ID == id {
			removed = true
			continue
		}
		next = append(next, tx)
	}
	s.Transactions = next
	if removed {
		s.Pagination.TotalItems--
	}
	return s
}

// ApplyError records a load failure; the previous page stays visible behind
// the banner.
func (s State) ApplyError(msg string) State {
	s.Err = msg
	return s
}
