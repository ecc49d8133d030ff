package account

import (
	"time"

	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/google/uuid"
)

// Kind identifies the type of a ledger event.
type Kind string

// Transaction kinds recorded in an account's log.
const (
	KindInitialDeposit Kind = "Initial Deposit"
	KindDeposit        Kind = "Deposit"
	KindWithdrawal     Kind = "Withdrawal"
	KindTransferDebit  Kind = "Transfer Debit"
	KindTransferCredit Kind = "Transfer Credit"
	KindInterest       Kind = "Interest"
)

func (k Kind) String() string {
	return string(k)
}

// Transaction is an immutable record of one ledger event. The amount is
// signed: debits (withdrawals, transfer debits) are negative, credits
// positive, so a log sums to the account balance.
type Transaction struct {
	ID            uuid.UUID
	AccountNumber string
	Kind          Kind
	Amount        money.Money
	CreatedAt     time.Time
}

func newTransaction(accountNumber string, kind Kind, amount money.Money) Transaction {
	return Transaction{
		ID:            uuid.New(),
		AccountNumber: accountNumber,
		Kind:          kind,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
}
