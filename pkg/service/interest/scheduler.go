// Package interest runs the recurring accrual process for savings accounts.
//
// Each tracked account gets its own cron entry firing at a fixed period.
// A firing takes the account's lock via AddInterest, so accrual serializes
// correctly against concurrent deposits, withdrawals and transfers. There
// are no catch-up semantics: missed ticks are not replayed.
package interest

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/robfig/cron/v3"
)

// ErrAlreadyTracked is returned when an account already has an accrual job.
var ErrAlreadyTracked = errors.New("account already tracked for accrual")

// Scheduler owns one periodic accrual job per savings account.
type Scheduler struct {
	cron   *cron.Cron
	period time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// New creates and starts a scheduler firing every period. Panics inside a
// job are recovered and logged instead of taking the process down.
func New(period time.Duration, logger *slog.Logger) *Scheduler {
	logger = logger.With("component", "interest")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))
	c.Start()
	return &Scheduler{
		cron:    c,
		period:  period,
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Track registers a periodic accrual job for a savings account. Called at
// account-open time. Fails with account.ErrNotSavings for checking
// accounts and ErrAlreadyTracked if a job already exists.
func (s *Scheduler) Track(a *account.Account) error {
	if a.Type() != account.Savings {
		return account.ErrNotSavings
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[a.Number()]; exists {
		return ErrAlreadyTracked
	}

	logger := s.logger.With("account", a.Number(), "rate", a.Rate())
	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.period), func() {
		accrued, err := a.AddInterest()
		if err != nil {
			logger.Error("interest accrual failed", "error", err)
			return
		}
		logger.Info("interest accrued", "amount", accrued.String())
	})
	if err != nil {
		return fmt.Errorf("schedule accrual for %s: %w", a.Number(), err)
	}

	s.entries[a.Number()] = id
	logger.Info("accrual scheduled", "period", s.period)
	return nil
}

// Untrack stops future accrual for an account without disrupting a firing
// already in flight. Reports whether the account was tracked. The hook
// exists for account closure, which is otherwise out of scope.
func (s *Scheduler) Untrack(number string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, exists := s.entries[number]
	if !exists {
		return false
	}
	s.cron.Remove(id)
	delete(s.entries, number)
	s.logger.Info("accrual stopped", "account", number)
	return true
}

// Tracked reports whether an account has an accrual job.
func (s *Scheduler) Tracked(number string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.entries[number]
	return exists
}

// Close stops all future firings and waits for in-flight jobs to finish.
func (s *Scheduler) Close() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
