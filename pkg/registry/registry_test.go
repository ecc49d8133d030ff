package registry_test

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/domain/user"
	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/avnoor-ludhar/banking/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	return registry.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func usd(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.New(amount, money.USD)
	require.NoError(t, err)
	return m
}

func TestRegisterUser(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)

	u, err := reg.RegisterUser("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)
	assert.Equal(t, "avnoor", u.Username())

	_, err = reg.RegisterUser("Other Person", "avnoor", "55 King Street", "6475559876")
	assert.ErrorIs(t, err, user.ErrDuplicateUsername)

	got, err := reg.User("avnoor")
	require.NoError(t, err)
	assert.Same(t, u, got)

	_, err = reg.User("nobody")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.RegisterUser("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)

	t.Run("unknown user", func(t *testing.T) {
		_, err := reg.Open("nobody", "100000001", usd(t, 100), account.Checking, 0)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("opens checking", func(t *testing.T) {
		a, err := reg.Open("avnoor", "100000001", usd(t, 100), account.Checking, 0)
		require.NoError(t, err)
		assert.Equal(t, account.Checking, a.Type())
		require.Len(t, a.Transactions(), 1)
		assert.Equal(t, account.KindInitialDeposit, a.Transactions()[0].Kind)
	})

	t.Run("duplicate number", func(t *testing.T) {
		_, err := reg.Open("avnoor", "100000001", usd(t, 100), account.Savings, 0.02)
		assert.ErrorIs(t, err, account.ErrDuplicateAccount)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := reg.Open("avnoor", "100000002", usd(t, 100), account.Type("Credit"), 0)
		assert.ErrorIs(t, err, account.ErrInvalidAccountType)
	})

	t.Run("failed open leaves no entry", func(t *testing.T) {
		_, err := reg.Open("avnoor", "100000003", money.Zero(money.USD), account.Checking, 0)
		assert.ErrorIs(t, err, account.ErrInvalidAmount)
		assert.False(t, reg.HasAccount("100000003"))
	})
}

func TestConcurrentOpensSameNumber(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.RegisterUser("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reg.Open("avnoor", "100000001", usd(t, 10), account.Checking, 0)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, account.ErrDuplicateAccount)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent open may win a number")
}

func TestAccountsOrdered(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.RegisterUser("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)

	for _, n := range []string{"300000003", "100000001", "200000002"} {
		_, err := reg.Open("avnoor", n, usd(t, 10), account.Checking, 0)
		require.NoError(t, err)
	}

	var numbers []string
	for _, a := range reg.Accounts() {
		numbers = append(numbers, a.Number())
	}
	assert.Equal(t, []string{"100000001", "200000002", "300000003"}, numbers)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.RegisterUser("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)
	_, err = reg.RegisterUser("Priya Sharma", "priya", "55 King Street", "6475559876")
	require.NoError(t, err)

	_, err = reg.Open("avnoor", "100000001", usd(t, 100), account.Checking, 0)
	require.NoError(t, err)
	_, err = reg.Open("priya", "200000002", usd(t, 50), account.Savings, 0.02)
	require.NoError(t, err)

	t.Run("by name, case-insensitive", func(t *testing.T) {
		matches := reg.Search("LUDHAR")
		require.Len(t, matches, 1)
		assert.Equal(t, "100000001", matches[0].Number)
	})

	t.Run("by username", func(t *testing.T) {
		matches := reg.Search("priya")
		require.Len(t, matches, 1)
		assert.Equal(t, account.Savings, matches[0].Type)
	})

	t.Run("by account number substring", func(t *testing.T) {
		matches := reg.Search("200000")
		require.Len(t, matches, 1)
		assert.Equal(t, "Priya Sharma", matches[0].Owner)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, reg.Search("zzz"))
	})
}

func TestConcurrentOpensDistinctNumbers(t *testing.T) {
	t.Parallel()
	reg := newRegistry(t)
	_, err := reg.RegisterUser("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Open("avnoor", fmt.Sprintf("1%08d", i), usd(t, 10), account.Checking, 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.Accounts(), n)
}
