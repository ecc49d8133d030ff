package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/domain/user"
	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newHolder(t *testing.T) *user.User {
	t.Helper()
	u, err := user.New("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)
	return u
}

func usd(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.New(amount, money.USD)
	require.NoError(t, err)
	return m
}

func TestNewChecking(t *testing.T) {
	t.Parallel()
	a, err := account.NewChecking("100000001", newHolder(t), usd(t, 250))
	require.NoError(t, err)

	assert.Equal(t, "100000001", a.Number())
	assert.Equal(t, account.Checking, a.Type())
	assert.Zero(t, a.Rate())
	assert.True(t, a.Balance().Equals(usd(t, 250)))

	txs := a.Transactions()
	require.Len(t, txs, 1, "account must be seeded with exactly one Initial Deposit")
	assert.Equal(t, account.KindInitialDeposit, txs[0].Kind)
	assert.True(t, txs[0].Amount.Equals(usd(t, 250)))
}

func TestNewAccountValidation(t *testing.T) {
	t.Parallel()
	holder := newHolder(t)

	_, err := account.NewChecking("", holder, usd(t, 10))
	assert.Error(t, err)

	_, err = account.NewChecking("100000001", nil, usd(t, 10))
	assert.Error(t, err)

	_, err = account.NewChecking("100000001", holder, money.Zero(money.USD))
	assert.ErrorIs(t, err, account.ErrInvalidAmount)

	_, err = account.NewSavings("100000001", holder, usd(t, 10), -0.01)
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]account.Type{
		"checking": account.Checking,
		"Savings":  account.Savings,
		" SAVINGS ": account.Savings,
	} {
		got, err := account.ParseType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := account.ParseType("chequing")
	assert.ErrorIs(t, err, account.ErrInvalidAccountType)
}

func TestDeposit(t *testing.T) {
	t.Parallel()
	a, err := account.NewChecking("100000001", newHolder(t), usd(t, 100))
	require.NoError(t, err)

	require.NoError(t, a.Deposit(usd(t, 50)))
	assert.True(t, a.Balance().Equals(usd(t, 150)))

	txs := a.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, account.KindDeposit, txs[1].Kind)

	err = a.Deposit(money.Zero(money.USD))
	assert.ErrorIs(t, err, account.ErrInvalidAmount)
	assert.Len(t, a.Transactions(), 2, "failed deposit must not append a transaction")
}

func TestWithdraw(t *testing.T) {
	t.Parallel()
	a, err := account.NewChecking("100000001", newHolder(t), usd(t, 100))
	require.NoError(t, err)

	t.Run("success records negative amount", func(t *testing.T) {
		require.NoError(t, a.Withdraw(usd(t, 40)))
		assert.True(t, a.Balance().Equals(usd(t, 60)))
		txs := a.Transactions()
		assert.Equal(t, account.KindWithdrawal, txs[len(txs)-1].Kind)
		assert.True(t, txs[len(txs)-1].Amount.IsNegative())
	})

	t.Run("insufficient funds leaves state untouched", func(t *testing.T) {
		before := a.Transactions()
		err := a.Withdraw(usd(t, 150))
		assert.ErrorIs(t, err, account.ErrInsufficientFunds)
		assert.True(t, a.Balance().Equals(usd(t, 60)))
		assert.Equal(t, before, a.Transactions())
	})

	t.Run("non-positive amount", func(t *testing.T) {
		err := a.Withdraw(money.Zero(money.USD))
		assert.ErrorIs(t, err, account.ErrInvalidAmount)
	})

	t.Run("exact balance is withdrawable", func(t *testing.T) {
		require.NoError(t, a.Withdraw(usd(t, 60)))
		assert.True(t, a.Balance().IsZero())
	})
}

func TestAddInterest(t *testing.T) {
	t.Parallel()

	t.Run("savings accrues balance times rate", func(t *testing.T) {
		a, err := account.NewSavings("100000001", newHolder(t), usd(t, 100), 0.02)
		require.NoError(t, err)

		accrued, err := a.AddInterest()
		require.NoError(t, err)
		assert.True(t, accrued.Equals(usd(t, 2)))
		assert.True(t, a.Balance().Equals(usd(t, 102)))

		txs := a.Transactions()
		require.Len(t, txs, 2)
		assert.Equal(t, account.KindInterest, txs[1].Kind)
		assert.True(t, txs[1].Amount.Equals(usd(t, 2)))
	})

	t.Run("checking does not accrue", func(t *testing.T) {
		a, err := account.NewChecking("100000002", newHolder(t), usd(t, 100))
		require.NoError(t, err)
		_, err = a.AddInterest()
		assert.ErrorIs(t, err, account.ErrNotSavings)
	})
}

func TestConcurrentDepositsSerialize(t *testing.T) {
	t.Parallel()
	const n = 100
	a, err := account.NewChecking("100000001", newHolder(t), usd(t, 10))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.Deposit(usd(t, 5)))
		}()
	}
	wg.Wait()

	assert.True(t, a.Balance().Equals(usd(t, 10+5*n)),
		"every concurrent deposit must be applied exactly once")
	assert.Len(t, a.Transactions(), 1+n)
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	t.Parallel()
	a, err := account.NewChecking("100000001", newHolder(t), usd(t, 100))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Only 10 of these can succeed.
			_ = a.Withdraw(usd(t, 10))
		}()
	}
	wg.Wait()

	assert.False(t, a.Balance().IsNegative(), "balance invariant violated")
	assert.True(t, a.Balance().IsZero())
}

func TestSnapshotBalanceMatchesLog(t *testing.T) {
	t.Parallel()
	a, err := account.NewSavings("100000001", newHolder(t), usd(t, 100), 0.02)
	require.NoError(t, err)
	require.NoError(t, a.Deposit(usd(t, 25)))
	require.NoError(t, a.Withdraw(usd(t, 10)))
	_, err = a.AddInterest()
	require.NoError(t, err)

	snap := a.Snapshot()
	sum := money.Zero(money.USD)
	for _, tx := range snap.Transactions {
		sum, err = sum.Add(tx.Amount)
		require.NoError(t, err)
	}
	assert.True(t, snap.Balance.Equals(sum),
		"snapshot balance must equal the sum of signed transaction amounts")
}
