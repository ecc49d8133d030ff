package money

import "errors"

// Common money package errors
var (
	// ErrMismatchedCurrencies is returned when performing arithmetic on
	// money with different currencies.
	ErrMismatchedCurrencies = errors.New("mismatched currencies")

	// ErrInvalidCurrencyCode is returned when a currency code is not a
	// valid ISO 4217 code.
	ErrInvalidCurrencyCode = errors.New("invalid currency code")

	// ErrTooManyDecimals is returned when an amount carries more precision
	// than the currency supports.
	ErrTooManyDecimals = errors.New("amount has too many decimal places")

	// ErrOverflow is returned when an amount cannot be represented in the
	// smallest currency unit.
	ErrOverflow = errors.New("amount overflows smallest currency unit")
)
