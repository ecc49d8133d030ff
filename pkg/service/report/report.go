// Package report renders consolidated account reports off the request path.
//
// A report is per-account consistent, not registry-wide consistent: each
// account's block is rendered from a snapshot taken under that account's
// lock, then the lock is released before moving on. Accounts later in the
// report may reflect mutations that happened while earlier blocks were
// being written. Strengthening this to a whole-registry snapshot would
// require a stop-the-world lock and is deliberately not done.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/registry"
)

const divider = "======================================"

// Generator produces the consolidated report of all accounts.
type Generator struct {
	reg    *registry.Registry
	logger *slog.Logger

	// mu serializes whole report writes so that two concurrent
	// generations cannot interleave blocks in the sink.
	mu sync.Mutex
}

// New creates a Generator over the registry.
func New(reg *registry.Registry, logger *slog.Logger) *Generator {
	return &Generator{reg: reg, logger: logger.With("component", "report")}
}

// Write renders one full report block to w: a header followed by every
// account's owner, number, type, balance and chronological transactions.
func (g *Generator) Write(w io.Writer) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := fmt.Fprintf(w, "Accounts Report (%s):\n%s\n",
		time.Now().UTC().Format(time.RFC3339), divider); err != nil {
		return err
	}
	for _, a := range g.reg.Accounts() {
		if err := WriteAccount(w, a.Snapshot()); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, divider); err != nil {
			return err
		}
	}
	return nil
}

// Append renders one report block onto the end of the file at path. Prior
// reports are never rewritten or truncated.
func (g *Generator) Append(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open report sink: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := g.Write(f); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	g.logger.Info("report appended", "path", path)
	return nil
}

// Run generates a report asynchronously, appending to the file at path.
// The submitting caller is not blocked; the returned channel receives the
// outcome and is closed.
func (g *Generator) Run(path string) <-chan error {
	result := make(chan error, 1)
	go func() {
		defer close(result)
		if err := g.Append(path); err != nil {
			g.logger.Error("report generation failed", "error", err)
			result <- err
		}
	}()
	return result
}

// WriteAccount renders one account block from a snapshot. Shared with the
// admin monitoring view and the CLI's account rendering.
func WriteAccount(w io.Writer, snap account.Snapshot) error {
	_, err := fmt.Fprintf(w, "Owner: %s\nAccount Number: %s\nType: %s\nBalance: %s\nTransactions:\n",
		snap.Owner, snap.Number, snap.Type, snap.Balance)
	if err != nil {
		return err
	}
	for _, tx := range snap.Transactions {
		if _, err := fmt.Fprintf(w, "  - %s: %s on %s\n",
			tx.Kind, tx.Amount, tx.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
