// Package account defines the ledger's account aggregate: a mutable balance
// with an append-only transaction log, in Checking and Savings variants.
//
// Each Account is its own lock domain. Every mutating operation on one
// account is mutually exclusive with every other mutating operation on that
// same account; operations on different accounts proceed concurrently.
// The balance invariant (never negative) is enforced synchronously inside
// the critical section of every mutation.
package account

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/avnoor-ludhar/banking/pkg/domain/user"
	"github.com/avnoor-ludhar/banking/pkg/money"
)

// Type tags the account variant.
type Type string

// Account variants.
const (
	Checking Type = "Checking"
	Savings  Type = "Savings"
)

// ParseType resolves a normalized account-type string ("checking" or
// "savings", case-insensitive) to its Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "checking":
		return Checking, nil
	case "savings":
		return Savings, nil
	default:
		return "", ErrInvalidAccountType
	}
}

// Account holds a customer's balance and transaction history.
//
// Invariants:
//   - The account number is unique and immutable after creation.
//   - The balance is never negative.
//   - The transaction log is append-only; the first entry is always the
//     Initial Deposit.
//   - Balance and log never disagree: both are updated inside one critical
//     section.
type Account struct {
	mu        sync.Mutex
	number    string
	holder    *user.User
	kind      Type
	rate      float64 // interest rate per accrual period; zero for checking
	balance   money.Money
	log       []Transaction
	createdAt time.Time
}

func newAccount(number string, holder *user.User, kind Type, rate float64, opening money.Money) (*Account, error) {
	if number == "" {
		return nil, errors.New("account number is required")
	}
	if holder == nil {
		return nil, errors.New("account holder is required")
	}
	if !opening.IsPositive() {
		return nil, ErrInvalidAmount
	}
	a := &Account{
		number:    number,
		holder:    holder,
		kind:      kind,
		rate:      rate,
		balance:   opening,
		createdAt: time.Now().UTC(),
	}
	// Seed the log before the account is handed to anyone else; an account
	// without its Initial Deposit entry must never be observable.
	a.log = append(a.log, newTransaction(number, KindInitialDeposit, opening))
	return a, nil
}

// NewChecking opens a checking account seeded with an Initial Deposit
// transaction equal to the opening balance.
func NewChecking(number string, holder *user.User, opening money.Money) (*Account, error) {
	return newAccount(number, holder, Checking, 0, opening)
}

// NewSavings opens a savings account with the given per-period interest
// rate, seeded with an Initial Deposit transaction.
func NewSavings(number string, holder *user.User, opening money.Money, rate float64) (*Account, error) {
	if rate < 0 {
		return nil, errors.New("interest rate cannot be negative")
	}
	return newAccount(number, holder, Savings, rate, opening)
}

// Number returns the immutable account number.
func (a *Account) Number() string { return a.number }

// Holder returns the owning user. The user is shared with the registry,
// not owned by the account.
func (a *Account) Holder() *user.User { return a.holder }

// Type returns the account variant.
func (a *Account) Type() Type { return a.kind }

// Rate returns the interest rate. Zero for checking accounts.
func (a *Account) Rate() float64 { return a.rate }

// CreatedAt returns the account open time.
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// Balance returns the current balance.
func (a *Account) Balance() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Transactions returns a copy of the transaction log in chronological
// (append) order.
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Transaction, len(a.log))
	copy(out, a.log)
	return out
}

// Deposit credits the account. The amount must be strictly positive; a
// non-positive amount fails with ErrInvalidAmount rather than silently
// no-oping.
func (a *Account) Deposit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creditLocked(KindDeposit, amount)
}

// Withdraw debits the account. Fails with ErrInsufficientFunds when the
// amount exceeds the current balance; the check and the debit happen inside
// one critical section so concurrent withdrawals cannot overdraw.
func (a *Account) Withdraw(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.debitLocked(KindWithdrawal, amount)
}

// AddInterest accrues one period of interest (balance * rate) on a savings
// account and records an Interest transaction. Returns the accrued amount.
func (a *Account) AddInterest() (money.Money, error) {
	if a.kind != Savings {
		return money.Money{}, ErrNotSavings
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	accrued := a.balance.Multiply(a.rate)
	if err := a.creditLocked(KindInterest, accrued); err != nil {
		return money.Money{}, err
	}
	return accrued, nil
}

// creditLocked adds amount to the balance and appends a credit entry.
// Callers must hold a.mu.
func (a *Account) creditLocked(kind Kind, amount money.Money) error {
	next, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = next
	a.log = append(a.log, newTransaction(a.number, kind, amount))
	return nil
}

// debitLocked subtracts amount from the balance and appends a debit entry
// with a negative signed amount. Callers must hold a.mu.
func (a *Account) debitLocked(kind Kind, amount money.Money) error {
	short, err := a.balance.LessThan(amount)
	if err != nil {
		return err
	}
	if short {
		return ErrInsufficientFunds
	}
	next, err := a.balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.balance = next
	a.log = append(a.log, newTransaction(a.number, kind, amount.Negate()))
	return nil
}
