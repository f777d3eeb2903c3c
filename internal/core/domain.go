package core

import (
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	MaxCategoryLen    = 100
	MaxDescriptionLen = 500
)

type (
	TransactionType string

	// Transaction is a single recorded income or expense event. Amount is a
	// magnitude; the sign is implied by Type and never stored negative.
	Transaction struct {
		ID          int64
		Type        TransactionType
		Amount      Money
		Category    string
		Description string
		Date        time.Time
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}

	// FieldError reports a single violated validation rule.
	FieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Validate checks every invariant and returns one FieldError per violated
// rule, never stopping at the first.
func (t Transaction) Validate() []FieldError {
	var errs []FieldError

	if !t.Type.Valid() {
		errs = append(errs, FieldError{Field: "type", Message: `Type must be either "income" or "expense"`})
	}
	if t.Amount.Cents <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount must be a positive number greater than 0"})
	}
	category := strings.TrimSpace(t.Category)
	if category == "" {
		errs = append(errs, FieldError{Field: "category", Message: "Category is required"})
	} else if len(category) > MaxCategoryLen {
		errs = append(errs, FieldError{Field: "category", Message: "Category cannot exceed 100 characters"})
	}
	if len(t.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{Field: "description", Message: "Description cannot exceed 500 characters"})
	}
	if t.Date.IsZero() {
		errs = append(errs, FieldError{Field: "date", Message: "Date is required"})
	}

	return errs
}
