package domain

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of fractional digits kept when a rate is derived by division.
const RatePrecision int32 = 10

// CurrencyPrecision is the number of fractional digits a charged amount is compared at.
const CurrencyPrecision int32 = 2

// Money represents a monetary value with exact decimal arithmetic.
// The zero value is a valid amount of zero.
type Money struct {
	d decimal.Decimal
}

// Zero returns a zero Money.
func Zero() Money {
	return Money{d: decimal.Zero}
}

// NewMoney creates Money from an integer number of currency units.
// Example: NewMoney(12000) represents 12,000.
func NewMoney(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// NewMoneyFromDecimal wraps a decimal value.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// ParseMoney parses a decimal string such as "12000" or "199.90".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MoneyFromRat converts a Spanner NUMERIC value. NUMERIC carries at most 9 fractional
// digits, so the conversion is exact.
func MoneyFromRat(r *big.Rat) (Money, error) {
	if r == nil {
		return Zero(), nil
	}
	return ParseMoney(r.FloatString(9))
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Rat returns the value as a big.Rat for NUMERIC columns.
func (m Money) Rat() *big.Rat {
	return m.d.Rat()
}

// Add adds two Money values.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Subtract subtracts another Money value from this one.
func (m Money) Subtract(other Money) Money {
	return Money{d: m.d.Sub(other.d)}
}

// MultiplyBy multiplies by a rate or any other dimensionless factor.
func (m Money) MultiplyBy(factor decimal.Decimal) Money {
	return Money{d: m.d.Mul(factor)}
}

// MultiplyByQuantity multiplies by an integer quantity.
func (m Money) MultiplyByQuantity(qty int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(qty))}
}

// RatioTo returns m / other rounded to RatePrecision digits.
// Callers must guard against a zero divisor.
func (m Money) RatioTo(other Money) decimal.Decimal {
	return m.d.DivRound(other.d, RatePrecision)
}

// Round rounds half away from zero to the given number of fractional digits.
func (m Money) Round(places int32) Money {
	return Money{d: m.d.Round(places)}
}

// IsZero returns true if the money value is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative returns true if the money value is negative.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsPositive returns true if the money value is positive.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// LessThan returns true if this Money value is less than another.
func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

// GreaterThan returns true if this Money value is greater than another.
func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

// Equals compares numerically, so 12000 equals 12000.00.
func (m Money) Equals(other Money) bool {
	return m.d.Equal(other.d)
}

// String returns the canonical decimal representation.
func (m Money) String() string {
	return m.d.String()
}

// MarshalJSON encodes Money as a JSON string to keep precision across clients.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.d.String())
}

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid money value: %w", err)
	}
	m.d = d
	return nil
}
