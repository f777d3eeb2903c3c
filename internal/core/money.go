// Package core holds the transaction domain model and monetary amount
// handling. Amounts are stored as integer cents to avoid floating-point
// drift in aggregation; floats exist only at the JSON boundary.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount is returned for amounts that are malformed, negative or zero.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a positive monetary magnitude in cents.
type Money struct {
	Cents int64
}

// MoneyFromFloat converts a decimal amount to cents with half-up rounding.
func MoneyFromFloat(v float64) Money {
	return Money{Cents: int64(math.Round(v * 100))}
}

// Float64 returns the decimal value for serialization and display.
// Use Cents for arithmetic.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot and comma separators are accepted. Signed,
// malformed and non-positive inputs are rejected.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents}, nil
}
