package service

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"tally/internal/core"
	"tally/internal/query"
)

// TransactionInput is the write payload for create and update. Pointer fields
// distinguish "absent" from "set to empty": create applies the input to a
// zero transaction so absent required fields fail validation, update applies
// it to the existing record so absent fields keep their value. Either way the
// resulting record is re-validated in full.
type TransactionInput struct {
	Type        *string         `json:"type"`
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Date        *string         `json:"date"`
}

// apply merges the input into base and validates the merged record, returning
// one error per violated field.
func (in TransactionInput) apply(base core.Transaction) (core.Transaction, []core.FieldError) {
	tx := base
	var errs []core.FieldError
	reported := map[string]bool{}

	if in.Type != nil {
		tx.Type = core.TransactionType(strings.TrimSpace(*in.Type))
	}

	if in.Amount != nil {
		amount, err := parseAmount(in.Amount)
		if err != nil {
			errs = append(errs, core.FieldError{Field: "amount", Message: "Amount must be a positive number greater than 0"})
			reported["amount"] = true
		} else {
			tx.Amount = amount
		}
	}

	if in.Category != nil {
		tx.Category = strings.TrimSpace(*in.Category)
	}

	if in.Description != nil {
		tx.Description = *in.Description
	}

	if in.Date != nil {
		v := strings.TrimSpace(*in.Date)
		if v == "" {
			tx.Date = time.Time{}
		} else if d, err := query.ParseDate(v); err != nil {
			errs = append(errs, core.FieldError{Field: "date", Message: "Date must be a valid ISO 8601 date string"})
			reported["date"] = true
		} else {
			tx.Date = d
		}
	}

	for _, fe := range tx.Validate() {
		if !reported[fe.Field] {
			errs = append(errs, fe)
		}
	}

	return tx, errs
}

// parseAmount accepts the amount either as a JSON number or as a quoted
// decimal string, converting to cents with half-up rounding.
func parseAmount(raw json.RawMessage) (core.Money, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return core.Money{}, core.ErrInvalidAmount
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return core.Money{}, core.ErrInvalidAmount
		}
		return core.ParseAmount(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return core.Money{}, core.ErrInvalidAmount
	}
	m := core.MoneyFromFloat(v)
	if m.Cents <= 0 {
		return core.Money{}, core.ErrInvalidAmount
	}
	return m, nil
}
