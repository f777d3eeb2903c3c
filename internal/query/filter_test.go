package query

import (
	"testing"
	"time"

	"tally/internal/core"
)

func TestBuildFilterEndOfDay(t *testing.T) {
	c := Criteria{
		From: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
	}
	f := BuildFilter(c)
	if !f.From.Equal(c.From) {
		t.Fatalf("from must pass through, got %v", f.From)
	}
	want := time.Date(2025, 2, 10, 23, 59, 59, 999000000, time.UTC)
	if !f.To.Equal(want) {
		t.Fatalf("to = %v, want end of day %v", f.To, want)
	}
	// A transaction late on the same day falls inside the range.
	late := time.Date(2025, 2, 10, 23, 30, 0, 0, time.UTC)
	if late.Before(f.From) || late.After(f.To) {
		t.Fatalf("same-day range must capture the whole day")
	}
}

func TestBuildFilterOpenEnds(t *testing.T) {
	f := BuildFilter(Criteria{From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	if !f.To.IsZero() {
		t.Fatalf("missing to must stay open, got %v", f.To)
	}
	f = BuildFilter(Criteria{To: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	if !f.From.IsZero() {
		t.Fatalf("missing from must stay open, got %v", f.From)
	}
}

func TestBuildFilterEmpty(t *testing.T) {
	f := BuildFilter(Criteria{})
	if !f.Empty() {
		t.Fatalf("no criteria must produce an empty filter: %+v", f)
	}
	if BuildFilter(Criteria{Type: core.Income}).Empty() {
		t.Fatalf("type constraint must not be empty")
	}
}

func TestBuildSort(t *testing.T) {
	cases := []struct {
		key   string
		field SortField
		desc  bool
	}{
		{"date_desc", SortByDate, true},
		{"date_asc", SortByDate, false},
		{"amount_desc", SortByAmount, true},
		{"amount_asc", SortByAmount, false},
		// fallback: creation order, not date order
		{"", SortByCreatedAt, true},
		{"bogus", SortByCreatedAt, true},
	}
	for _, tc := range cases {
		o := BuildSort(tc.key)
		if o.Field != tc.field || o.Desc != tc.desc {
			t.Errorf("BuildSort(%q) = %+v, want {%s %v}", tc.key, o, tc.field, tc.desc)
		}
	}
}
