package core

import (
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		Type:        Expense,
		Amount:      Money{Cents: 1250},
		Category:    "Groceries",
		Description: "weekly shop",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidateOK(t *testing.T) {
	if errs := validTransaction().Validate(); len(errs) != 0 {
		t.Fatalf("expected no violations, got %v", errs)
	}
}

func TestTransactionValidateFields(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		field  string
	}{
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, "type"},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, "amount"},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -5} }, "amount"},
		{"empty category", func(tx *Transaction) { tx.Category = "   " }, "category"},
		{"long category", func(tx *Transaction) { tx.Category = long(101) }, "category"},
		{"long description", func(tx *Transaction) { tx.Description = long(501) }, "description"},
		{"missing date", func(tx *Transaction) { tx.Date = time.Time{} }, "date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			errs := tx.Validate()
			if len(errs) != 1 {
				t.Fatalf("expected exactly one violation, got %v", errs)
			}
			if errs[0].Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, errs[0].Field)
			}
		})
	}
}

// All broken fields must be reported at once, not just the first.
func TestTransactionValidateCollectsAll(t *testing.T) {
	tx := Transaction{Type: Expense, Amount: Money{Cents: 0}, Category: ""}
	errs := tx.Validate()
	if len(errs) != 3 {
		t.Fatalf("expected 3 violations (amount, category, date), got %v", errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"amount", "category", "date"} {
		if !fields[f] {
			t.Fatalf("missing violation for %q: %v", f, errs)
		}
	}
}

func TestBoundaryLengthsAccepted(t *testing.T) {
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}
	tx := validTransaction()
	tx.Category = long(100)
	tx.Description = long(500)
	if errs := tx.Validate(); len(errs) != 0 {
		t.Fatalf("boundary lengths should pass, got %v", errs)
	}
}
