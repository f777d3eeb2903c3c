package query

// SortField identifies the column an ordering applies to.
type SortField string

const (
	SortByDate      SortField = "date"
	SortByAmount    SortField = "amount"
	SortByCreatedAt SortField = "created_at"
)

// Order is a field+direction pair understood by the store.
type Order struct {
	Field SortField
	Desc  bool
}

var sortKeys = map[string]Order{
	"date_desc":   {Field: SortByDate, Desc: true},
	"date_asc":    {Field: SortByDate, Desc: false},
	"amount_desc": {Field: SortByAmount, Desc: true},
	"amount_asc":  {Field: SortByAmount, Desc: false},
}

// ValidSortKey reports whether key is one of the four recognized sort keys.
func ValidSortKey(key string) bool {
	_, ok := sortKeys[key]
	return ok
}

// BuildSort maps a sort key to an ordering. Absent or unrecognized keys fall
// back to descending creation order (newest inserted first). That fallback is
// deliberately distinct from date_desc: unsorted listings keep insertion-order
// tie-breaking.
func BuildSort(key string) Order {
	if o, ok := sortKeys[key]; ok {
		return o
	}
	return Order{Field: SortByCreatedAt, Desc: true}
}
