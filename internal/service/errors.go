package service

import (
	"fmt"

	"tally/internal/core"
)

// ValidationError carries every violated rule for a rejected request. The
// HTTP layer maps it to a 400 with the full field list.
type ValidationError struct {
	Fields []core.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) violated", len(e.Fields))
}

func newValidationError(fields []core.FieldError) error {
	return &ValidationError{Fields: fields}
}
