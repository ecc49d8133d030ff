package account

import "github.com/avnoor-ludhar/banking/pkg/money"

// Snapshot is an internally consistent read of one account: the balance and
// the transaction list are captured under the account lock in a single
// critical section, so they can never disagree (the balance always equals
// the sum of the signed transaction amounts).
type Snapshot struct {
	Number       string
	Owner        string
	Type         Type
	Balance      money.Money
	Transactions []Transaction
}

// Snapshot captures the account's current state under its lock.
func (a *Account) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	txs := make([]Transaction, len(a.log))
	copy(txs, a.log)
	return Snapshot{
		Number:       a.number,
		Owner:        a.holder.FullName(),
		Type:         a.kind,
		Balance:      a.balance,
		Transactions: txs,
	}
}
