// Package sheets defines the outbound port for the spreadsheet audit trail.
package sheets

import (
	"context"

	"tally/internal/core"
)

// RowWriter appends one audit row per transaction change. Implementations
// live in the google and memory subpackages.
type RowWriter interface {
	AppendRow(ctx context.Context, tx core.Transaction, action string) (rowRef string, err error)
}
