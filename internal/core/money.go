// Package core provides money parsing and handling utilities.
//
// Money is held as signed integer cents; decimal input and JSON output go
// through shopspring/decimal so no float64 ever reaches a stored amount.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Money struct {
	Cents int64
}

// MaxAmount is the largest magnitude accepted from input or storage. It
// leaves room to sum many records without leaving the int64 range.
var MaxAmount = NewMoney(1_000_000_000_000)

var maxCents = decimal.NewFromInt(MaxAmount.Cents)

// NewMoney returns a whole-unit amount.
func NewMoney(units int64) Money {
	return Money{Cents: units * 100}
}

// ParseAmount converts a non-negative decimal string to Money with half-up
// rounding to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Signs are
// rejected; use ParseSignedAmount for balances.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,345") -> 1235 cents
//	ParseAmount("-1")     -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	return parseUnsigned(s)
}

// ParseSignedAmount is ParseAmount with an optional leading minus sign.
func ParseSignedAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		m, err := ParseAmount(rest)
		if err != nil {
			return Money{}, err
		}
		return m.Neg(), nil
	}
	return ParseAmount(s)
}

func parseUnsigned(s string) (Money, error) {
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.ContainsAny(s, "eE") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Validate rejects negative amounts and amounts above MaxAmount.
func (m Money) Validate() error {
	if m.Cents < 0 || m.Cents > MaxAmount.Cents {
		return ErrInvalidAmount
	}
	return nil
}

// Add saturates at the int64 bounds instead of wrapping.
func (m Money) Add(o Money) Money {
	sum := m.Cents + o.Cents
	switch {
	case o.Cents > 0 && sum < m.Cents:
		return Money{Cents: math.MaxInt64}
	case o.Cents < 0 && sum > m.Cents:
		return Money{Cents: math.MinInt64}
	}
	return Money{Cents: sum}
}

func (m Money) Sub(o Money) Money { return m.Add(o.Neg()) }

func (m Money) Neg() Money {
	if m.Cents == math.MinInt64 {
		return Money{Cents: math.MaxInt64}
	}
	return Money{Cents: -m.Cents}
}

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsPositive() bool { return m.Cents > 0 }
func (m Money) IsNegative() bool { return m.Cents < 0 }

// Percent returns m scaled by pct/100, rounded to cents.
func (m Money) Percent(pct int64) Money {
	d := m.Decimal().Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100))
	out, _ := fromDecimal(d)
	return out
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float64 returns the value as a float64 for display and ratios only.
// Use cents for calculations.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a bare decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	out, err := fromDecimal(d)
	if err != nil {
		return err
	}
	*m = out
	return nil
}
