package account

import "errors"

var (
	// ErrAccountNotFound is returned when an account number cannot be
	// resolved.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateAccount is returned when opening an account with a
	// number that is already in use.
	ErrDuplicateAccount = errors.New("account number already exists")

	// ErrInvalidAccountType is returned for an unrecognized account type.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInsufficientFunds is returned when a withdrawal or transfer would
	// drive the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount is returned when an operation amount is not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTransactionKind is returned for an unrecognized
	// transaction kind.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrNotSavings is returned when interest accrual is attempted on a
	// non-savings account.
	ErrNotSavings = errors.New("interest requires a savings account")

	// ErrNilAccount is returned when a nil account is passed to a transfer.
	ErrNilAccount = errors.New("nil account")

	// ErrSameAccountTransfer is returned when a transfer names the same
	// account on both sides.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
)
