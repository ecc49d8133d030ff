package interest_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/domain/user"
	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/avnoor-ludhar/banking/pkg/service/interest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	os.Exit(m.Run())
}

func newSavings(t *testing.T, number string) *account.Account {
	t.Helper()
	u, err := user.New("Avnoor Ludhar", "avnoor", "123 Main Street", "4165551234")
	require.NoError(t, err)
	opening, err := money.New(100, money.USD)
	require.NoError(t, err)
	a, err := account.NewSavings(number, u, opening, 0.02)
	require.NoError(t, err)
	return a
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTrack(t *testing.T) {
	t.Parallel()
	s := interest.New(time.Minute, discardLogger())
	defer s.Close()

	a := newSavings(t, "100000001")
	require.NoError(t, s.Track(a))
	assert.True(t, s.Tracked("100000001"))

	t.Run("rejects double tracking", func(t *testing.T) {
		assert.ErrorIs(t, s.Track(a), interest.ErrAlreadyTracked)
	})

	t.Run("rejects checking accounts", func(t *testing.T) {
		u, err := user.New("Priya Sharma", "priya", "55 King Street", "6475559876")
		require.NoError(t, err)
		opening, err := money.New(100, money.USD)
		require.NoError(t, err)
		chk, err := account.NewChecking("200000002", u, opening)
		require.NoError(t, err)
		assert.ErrorIs(t, s.Track(chk), account.ErrNotSavings)
	})
}

func TestUntrack(t *testing.T) {
	t.Parallel()
	s := interest.New(time.Minute, discardLogger())
	defer s.Close()

	a := newSavings(t, "100000001")
	require.NoError(t, s.Track(a))

	assert.True(t, s.Untrack("100000001"))
	assert.False(t, s.Tracked("100000001"))
	assert.False(t, s.Untrack("100000001"), "untracking twice reports not tracked")

	// The account can be tracked again after a stop.
	assert.NoError(t, s.Track(a))
}

func TestPeriodicAccrual(t *testing.T) {
	t.Parallel()
	// cron's @every bottoms out at one second.
	s := interest.New(time.Second, discardLogger())
	defer s.Close()

	a := newSavings(t, "100000001")
	require.NoError(t, s.Track(a))

	require.Eventually(t, func() bool {
		for _, tx := range a.Transactions() {
			if tx.Kind == account.KindInterest {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond, "expected an Interest transaction from the scheduler")

	// Balance and log stay in agreement under accrual.
	snap := a.Snapshot()
	sum := money.Zero(money.USD)
	var err error
	for _, tx := range snap.Transactions {
		sum, err = sum.Add(tx.Amount)
		require.NoError(t, err)
	}
	assert.True(t, snap.Balance.Equals(sum))
}

func TestUntrackStopsAccrual(t *testing.T) {
	t.Parallel()
	s := interest.New(time.Second, discardLogger())
	defer s.Close()

	a := newSavings(t, "100000001")
	require.NoError(t, s.Track(a))
	require.True(t, s.Untrack("100000001"))

	before := len(a.Transactions())
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, before, len(a.Transactions()), "no further accrual after Untrack")
}
