package query

// Window is a clamped skip/limit view over a result set. Clamping happens
// before the skip offset is computed, so malformed input can never produce a
// negative offset or an oversized page.
type Window struct {
	Page  int
	Limit int
	Skip  int
}

// NewWindow clamps page to at least 1 and limit into [1, MaxLimit], then
// derives the skip offset.
func NewWindow(page, limit int) Window {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	} else if limit > MaxLimit {
		limit = MaxLimit
	}
	return Window{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

// Pagination is the derived position metadata returned with every list
// response.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	TotalItems      int  `json:"totalItems"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paginate computes page metadata from a clamped window and a total count.
// TotalPages is ceil(total/limit), which is 0 for an empty result set; both
// has-next and has-previous are then trivially false.
func Paginate(page, limit, totalItems int) Pagination {
	w := NewWindow(page, limit)
	totalPages := (totalItems + w.Limit - 1) / w.Limit
	return Pagination{
		CurrentPage:     w.Page,
		ItemsPerPage:    w.Limit,
		TotalItems:      totalItems,
		TotalPages:      totalPages,
		HasNextPage:     w.Page < totalPages,
		HasPreviousPage: w.Page > 1,
	}
}
