// Package transaction runs ledger mutations as independent units of work on
// a worker pool. Submissions are fire-and-forget by default; callers that
// need the outcome wait on the returned Task.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/avnoor-ludhar/banking/pkg/registry"
)

// ErrEngineClosed is returned for submissions after Close.
var ErrEngineClosed = errors.New("transaction engine closed")

// Kind identifies the operation a request performs.
type Kind string

// Supported request kinds. Anything else fails with
// account.ErrInvalidTransactionKind as the task outcome.
const (
	Deposit    Kind = "deposit"
	Withdrawal Kind = "withdrawal"
	Transfer   Kind = "transfer"
)

// Request carries normalized, pre-validated parameters for one operation.
// Destination is only meaningful for transfers.
type Request struct {
	Kind          Kind
	AccountNumber string
	Amount        money.Money
	Destination   string
}

// Task is the handle for one submitted request. It completes exactly once.
type Task struct {
	req     Request
	done    chan struct{}
	err     error
	balance money.Money
}

// Done returns a channel closed when the task has completed.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task completes or the context is cancelled, and
// returns the task's outcome. Cancellation abandons the wait, not the
// operation: the mutation still runs to completion on the pool.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the task outcome. Only valid after Done is closed.
func (t *Task) Err() error { return t.err }

// Balance returns the affected account's balance observed at completion.
// Only valid after Done is closed and Err is nil.
func (t *Task) Balance() money.Money { return t.balance }

// Engine executes requests on a fixed pool of workers. Per-account
// serialization comes from the account locks, not from the pool: two
// workers touching different accounts run fully in parallel.
type Engine struct {
	reg    *registry.Registry
	logger *slog.Logger
	tasks  chan *Task
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New starts an engine with the given worker count and queue depth.
func New(reg *registry.Registry, logger *slog.Logger, workers, queue int) *Engine {
	if workers < 1 {
		workers = 1
	}
	e := &Engine{
		reg:    reg,
		logger: logger.With("component", "engine"),
		tasks:  make(chan *Task, queue),
	}
	for i := 0; i < workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
	return e
}

// Submit queues a request and returns its task handle. The caller's
// goroutine never executes the mutation itself. After Close, the returned
// task completes immediately with ErrEngineClosed.
func (e *Engine) Submit(req Request) *Task {
	t := &Task{req: req, done: make(chan struct{})}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		t.err = ErrEngineClosed
		close(t.done)
		return t
	}
	e.tasks <- t
	return t
}

// Close stops accepting submissions, drains queued tasks and waits for
// in-flight work to finish.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.tasks)
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Engine) worker() {
	defer e.wg.Done()
	for t := range e.tasks {
		e.process(t)
	}
}

func (e *Engine) process(t *Task) {
	defer close(t.done)

	logger := e.logger.With(
		"kind", t.req.Kind,
		"account", t.req.AccountNumber,
		"amount", t.req.Amount.String(),
	)

	switch t.req.Kind {
	case Deposit:
		t.err = e.mutate(t, logger, func(a *account.Account) error {
			return a.Deposit(t.req.Amount)
		})
	case Withdrawal:
		t.err = e.mutate(t, logger, func(a *account.Account) error {
			return a.Withdraw(t.req.Amount)
		})
	case Transfer:
		t.err = e.transfer(t, logger.With("destination", t.req.Destination))
	default:
		t.err = account.ErrInvalidTransactionKind
		logger.Warn("rejected transaction", "error", t.err)
	}
}

// mutate resolves the account and applies a single-account operation under
// that account's lock.
func (e *Engine) mutate(t *Task, logger *slog.Logger, op func(*account.Account) error) error {
	a, err := e.reg.Account(t.req.AccountNumber)
	if err != nil {
		logger.Warn("rejected transaction", "error", err)
		return err
	}
	if err := op(a); err != nil {
		logger.Warn("transaction failed", "error", err)
		return err
	}
	t.balance = a.Balance()
	logger.Info("transaction applied", "balance", t.balance.String())
	return nil
}

func (e *Engine) transfer(t *Task, logger *slog.Logger) error {
	src, err := e.reg.Account(t.req.AccountNumber)
	if err != nil {
		logger.Warn("rejected transfer", "error", err)
		return err
	}
	dst, err := e.reg.Account(t.req.Destination)
	if err != nil {
		logger.Warn("rejected transfer", "error", err)
		return err
	}
	if err := account.Transfer(src, dst, t.req.Amount); err != nil {
		logger.Warn("transfer failed", "error", err)
		return err
	}
	t.balance = src.Balance()
	logger.Info("transfer applied", "balance", t.balance.String())
	return nil
}
