package query

import "testing"

func TestPaginateMetadata(t *testing.T) {
	cases := []struct {
		name              string
		page, limit, tot  int
		wantPages         int
		wantNext, wantPrev bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle", 2, 20, 45, 3, true, true},
		{"last", 3, 20, 45, 3, false, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"single page", 1, 100, 7, 1, false, false},
		{"empty set", 1, 20, 0, 0, false, false},
		{"past the end", 9, 20, 45, 3, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(tc.page, tc.limit, tc.tot)
			if p.CurrentPage != tc.page && tc.page >= 1 {
				t.Errorf("CurrentPage = %d, want %d", p.CurrentPage, tc.page)
			}
			if p.ItemsPerPage != tc.limit {
				t.Errorf("ItemsPerPage = %d, want %d", p.ItemsPerPage, tc.limit)
			}
			if p.TotalItems != tc.tot {
				t.Errorf("TotalItems = %d, want %d", p.TotalItems, tc.tot)
			}
			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.HasNextPage != tc.wantNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tc.wantNext)
			}
			if p.HasPreviousPage != tc.wantPrev {
				t.Errorf("HasPreviousPage = %v, want %v", p.HasPreviousPage, tc.wantPrev)
			}
			if (p.CurrentPage < p.TotalPages) != p.HasNextPage {
				t.Errorf("hasNextPage must equal page < totalPages")
			}
		})
	}
}

// Out-of-range input must clamp to the same result as the nearest valid input.
func TestPaginateClamping(t *testing.T) {
	if got, want := Paginate(0, 500, 10), Paginate(1, 100, 10); got != want {
		t.Fatalf("Paginate(0,500,10) = %+v, want %+v", got, want)
	}
	if got, want := Paginate(-3, 0, 10), Paginate(1, 1, 10); got != want {
		t.Fatalf("Paginate(-3,0,10) = %+v, want %+v", got, want)
	}
}

func TestNewWindowSkip(t *testing.T) {
	cases := []struct {
		page, limit, skip int
	}{
		{1, 20, 0},
		{3, 20, 40},
		{0, 20, 0},   // clamped page
		{2, 500, 100}, // clamped limit
	}
	for _, tc := range cases {
		w := NewWindow(tc.page, tc.limit)
		if w.Skip != tc.skip {
			t.Errorf("NewWindow(%d,%d).Skip = %d, want %d", tc.page, tc.limit, w.Skip, tc.skip)
		}
		if w.Skip < 0 {
			t.Errorf("skip must never be negative")
		}
	}
}
