// Package money provides a Money value object for the ledger.
//
// Amounts are stored as int64 in the smallest currency unit (cents for USD)
// to avoid floating point drift in balances. All arithmetic requires
// matching currencies.
package money

import (
	"fmt"
	"math"
	"regexp"
)

// Code represents an ISO 4217 currency code (e.g., "USD").
type Code string

// USD is the default currency for the ledger.
const USD Code = "USD"

// DefaultCurrency is used when a caller does not specify a currency code.
const DefaultCurrency = USD

// decimals is the number of fractional digits carried by supported
// currencies. The ledger is effectively single-currency today; all
// supported codes use two decimal places.
const decimals = 2

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValid reports whether the code is a well-formed ISO 4217 code.
func (c Code) IsValid() bool {
	return codeFormat.MatchString(string(c))
}

func (c Code) String() string {
	return string(c)
}

// Amount is a monetary amount in the smallest currency unit.
type Amount = int64

// Money represents a monetary value in a specific currency.
//
// Invariants:
//   - amount is always stored in the smallest currency unit.
//   - currency code is a valid ISO 4217 code.
type Money struct {
	amount   Amount
	currency Code
}

// New creates Money from a major-unit amount (e.g., dollars).
// The amount must not carry more precision than the currency allows.
func New(amount float64, currency Code) (Money, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if !currency.IsValid() {
		return Money{}, ErrInvalidCurrencyCode
	}
	scaled := amount * math.Pow10(decimals)
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return Money{}, ErrTooManyDecimals
	}
	if rounded > math.MaxInt64 || rounded < math.MinInt64 {
		return Money{}, ErrOverflow
	}
	return Money{amount: Amount(rounded), currency: currency}, nil
}

// NewFromSmallestUnit creates Money directly from the smallest currency unit.
func NewFromSmallestUnit(amount Amount, currency Code) (Money, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if !currency.IsValid() {
		return Money{}, ErrInvalidCurrencyCode
	}
	return Money{amount: amount, currency: currency}, nil
}

// Zero returns a zero-valued Money in the given currency.
func Zero(currency Code) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{currency: currency}
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount {
	return m.amount
}

// AmountFloat returns the amount in the major currency unit.
func (m Money) AmountFloat() float64 {
	return float64(m.amount) / math.Pow10(decimals)
}

// Currency returns the currency code.
func (m Money) Currency() Code {
	return m.currency
}

// IsSameCurrency reports whether both values share a currency.
func (m Money) IsSameCurrency(other Money) bool {
	return m.currency == other.currency
}

// Add returns the sum of both values.
func (m Money) Add(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrMismatchedCurrencies
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of both values.
func (m Money) Subtract(other Money) (Money, error) {
	if !m.IsSameCurrency(other) {
		return Money{}, ErrMismatchedCurrencies
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Multiply scales the value by a factor, rounding to the nearest
// smallest unit. Used for interest accrual.
func (m Money) Multiply(factor float64) Money {
	return Money{
		amount:   Amount(math.Round(float64(m.amount) * factor)),
		currency: m.currency,
	}
}

// Negate returns the value with its sign flipped.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Equals reports whether both values have the same amount and currency.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount == other.amount
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrMismatchedCurrencies
	}
	return m.amount > other.amount, nil
}

// LessThan reports whether m is below other.
func (m Money) LessThan(other Money) (bool, error) {
	if !m.IsSameCurrency(other) {
		return false, ErrMismatchedCurrencies
	}
	return m.amount < other.amount, nil
}

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative reports whether the amount is strictly negative.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// String renders the value in major units with its currency code,
// e.g. "100.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%.*f %s", decimals, m.AmountFloat(), m.currency)
}
