// Package query implements the filtering, sorting and pagination contract
// shared by the HTTP API and the transaction store. Everything here is a pure
// transformation from request parameters to a query shape the store
// understands; no I/O happens in this package.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"tally/internal/core"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Criteria describes one requested view over transactions. Zero values mean
// "no constraint" for the optional fields.
type Criteria struct {
	Type     core.TransactionType
	Category string
	From     time.Time
	To       time.Time
	Sort     string
	Page     int
	Limit    int
}

// ParseValues extracts criteria from URL query parameters. Absent parameters
// take defaults; present but malformed ones are each reported as a field
// error. Criteria are only usable when the error list is empty.
func ParseValues(values url.Values) (Criteria, []core.FieldError) {
	c := Criteria{Page: DefaultPage, Limit: DefaultLimit}
	var errs []core.FieldError

	if v := strings.TrimSpace(values.Get("type")); v != "" {
		t := core.TransactionType(v)
		if !t.Valid() {
			errs = append(errs, core.FieldError{Field: "type", Message: `Type must be either "income" or "expense"`})
		} else {
			c.Type = t
		}
	}

	c.Category = strings.TrimSpace(values.Get("category"))

	if v := strings.TrimSpace(values.Get("from")); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			errs = append(errs, core.FieldError{Field: "from", Message: "From date must be a valid ISO 8601 date string"})
		} else {
			c.From = d
		}
	}

	if v := strings.TrimSpace(values.Get("to")); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			errs = append(errs, core.FieldError{Field: "to", Message: "To date must be a valid ISO 8601 date string"})
		} else {
			c.To = d
		}
	}

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, core.FieldError{Field: "page", Message: "Page must be a positive integer"})
		} else {
			c.Page = n
		}
	}

	if v := strings.TrimSpace(values.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxLimit {
			errs = append(errs, core.FieldError{Field: "limit", Message: "Limit must be between 1 and 100"})
		} else {
			c.Limit = n
		}
	}

	if v := strings.TrimSpace(values.Get("sort")); v != "" {
		if !ValidSortKey(v) {
			errs = append(errs, core.FieldError{Field: "sort", Message: "Sort must be one of: date_desc, date_asc, amount_desc, amount_asc"})
		} else {
			c.Sort = v
		}
	}

	return c, errs
}

// ParseDate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
// Date-only values resolve to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
