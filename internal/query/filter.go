package query

import (
	"time"

	"tally/internal/core"
)

// Filter is the store-level predicate derived from criteria. Each set field
// adds a constraint; constraints compose with logical AND. Zero values impose
// no constraint.
type Filter struct {
	Type     core.TransactionType
	Category string // case-insensitive substring match
	From     time.Time
	To       time.Time
}

// BuildFilter translates criteria into a store filter. The upper date bound is
// extended to 23:59:59.999 of its calendar day so a same-day range captures
// the whole day; the lower bound is used as given (date-only input already
// resolves to start of day).
func BuildFilter(c Criteria) Filter {
	f := Filter{
		Type:     c.Type,
		Category: c.Category,
		From:     c.From,
	}
	if !c.To.IsZero() {
		y, m, d := c.To.UTC().Date()
		f.To = time.Date(y, m, d, 23, 59, 59, 999000000, time.UTC)
	}
	return f
}

// Empty reports whether the filter imposes no constraint at all.
func (f Filter) Empty() bool {
	return f.Type == "" && f.Category == "" && f.From.IsZero() && f.To.IsZero()
}
