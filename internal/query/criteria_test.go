package query

import (
	"net/url"
	"testing"
	"time"

	"tally/internal/core"
)

func TestParseValuesDefaults(t *testing.T) {
	c, errs := ParseValues(url.Values{})
	if len(errs) != 0 {
		t.Fatalf("empty query must be valid, got %v", errs)
	}
	if c.Page != DefaultPage || c.Limit != DefaultLimit {
		t.Fatalf("defaults = page %d limit %d, want %d/%d", c.Page, c.Limit, DefaultPage, DefaultLimit)
	}
	if c.Type != "" || c.Category != "" || c.Sort != "" || !c.From.IsZero() || !c.To.IsZero() {
		t.Fatalf("absent params must impose no constraint: %+v", c)
	}
}

func TestParseValuesValid(t *testing.T) {
	v := url.Values{
		"type":     {"expense"},
		"category": {"  food "},
		"from":     {"2025-01-01"},
		"to":       {"2025-01-31"},
		"page":     {"2"},
		"limit":    {"50"},
		"sort":     {"amount_asc"},
	}
	c, errs := ParseValues(v)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if c.Type != core.Expense || c.Category != "food" || c.Sort != "amount_asc" {
		t.Fatalf("parsed criteria wrong: %+v", c)
	}
	if c.From != time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("from = %v", c.From)
	}
	if c.Page != 2 || c.Limit != 50 {
		t.Fatalf("page/limit = %d/%d", c.Page, c.Limit)
	}
}

func TestParseValuesRejectsMalformed(t *testing.T) {
	cases := []struct {
		name  string
		v     url.Values
		field string
	}{
		{"bad type", url.Values{"type": {"transfer"}}, "type"},
		{"bad from", url.Values{"from": {"yesterday"}}, "from"},
		{"bad to", url.Values{"to": {"31/01/2025"}}, "to"},
		{"zero page", url.Values{"page": {"0"}}, "page"},
		{"non-numeric page", url.Values{"page": {"two"}}, "page"},
		{"limit too large", url.Values{"limit": {"101"}}, "limit"},
		{"limit zero", url.Values{"limit": {"0"}}, "limit"},
		{"bad sort", url.Values{"sort": {"category_desc"}}, "sort"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := ParseValues(tc.v)
			if len(errs) != 1 || errs[0].Field != tc.field {
				t.Fatalf("expected single error on %q, got %v", tc.field, errs)
			}
		})
	}
}

// Every malformed parameter is reported, not just the first.
func TestParseValuesReportsAll(t *testing.T) {
	v := url.Values{"type": {"x"}, "page": {"-1"}, "sort": {"nope"}}
	_, errs := ParseValues(v)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
}

func TestParseDateAcceptsTimestamps(t *testing.T) {
	d, err := ParseDate("2025-06-15T18:30:00+02:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := time.Date(2025, 6, 15, 16, 30, 0, 0, time.UTC); !d.Equal(want) {
		t.Fatalf("got %v, want %v", d, want)
	}
}
