package account

import "github.com/avnoor-ludhar/banking/pkg/money"

// Transfer atomically moves amount from src to dst. Both account locks are
// held for the duration, acquired in ascending account-number order
// regardless of transfer direction so that two opposite-direction transfers
// cannot deadlock, and released in reverse acquisition order.
//
// The operation is all-or-nothing: on any failure (insufficient funds,
// currency mismatch) neither account is mutated. A successful transfer
// appends a Transfer Debit to src and a Transfer Credit to dst, conserving
// total money across the pair.
func Transfer(src, dst *Account, amount money.Money) error {
	if src == nil || dst == nil {
		return ErrNilAccount
	}
	if src == dst || src.number == dst.number {
		return ErrSameAccountTransfer
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	// Fixed total order: lowest account number first, never caller order.
	first, second := src, dst
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	// Deferred unlocks run LIFO, releasing in reverse acquisition order.
	defer first.mu.Unlock()
	defer second.mu.Unlock()

	// Validate before touching either balance so a failure leaves no
	// partial mutation behind.
	short, err := src.balance.LessThan(amount)
	if err != nil {
		return err
	}
	if short {
		return ErrInsufficientFunds
	}
	if !dst.balance.IsSameCurrency(amount) {
		return money.ErrMismatchedCurrencies
	}

	if err := src.debitLocked(KindTransferDebit, amount); err != nil {
		return err
	}
	return dst.creditLocked(KindTransferCredit, amount)
}
