// Package app wires the ledger's services together behind one long-lived
// instance that the CLI layer drives. The registry, engine, scheduler and
// report generator are all injected here rather than living as globals.
package app

import (
	"fmt"
	"log/slog"

	"github.com/avnoor-ludhar/banking/pkg/config"
	"github.com/avnoor-ludhar/banking/pkg/domain/account"
	"github.com/avnoor-ludhar/banking/pkg/money"
	"github.com/avnoor-ludhar/banking/pkg/registry"
	"github.com/avnoor-ludhar/banking/pkg/service/auth"
	"github.com/avnoor-ludhar/banking/pkg/service/interest"
	"github.com/avnoor-ludhar/banking/pkg/service/report"
	"github.com/avnoor-ludhar/banking/pkg/service/transaction"
)

// App owns the process-lifetime services.
type App struct {
	Config    *config.App
	Logger    *slog.Logger
	Registry  *registry.Registry
	Engine    *transaction.Engine
	Scheduler *interest.Scheduler
	Reports   *report.Generator
	Gate      *auth.Gate

	currency money.Code
}

// New builds the application from configuration.
func New(cfg *config.App, logger *slog.Logger) (*App, error) {
	currency := money.Code(cfg.Currency)
	if !currency.IsValid() {
		return nil, fmt.Errorf("configured currency %q: %w", cfg.Currency, money.ErrInvalidCurrencyCode)
	}

	reg := registry.New(logger)
	return &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  reg,
		Engine:    transaction.New(reg, logger, cfg.Engine.Workers, cfg.Engine.Queue),
		Scheduler: interest.New(cfg.Interest.Period, logger),
		Reports:   report.New(reg, logger),
		Gate:      auth.NewGate(cfg.Admin.CredentialHash, logger),
		currency:  currency,
	}, nil
}

// Currency returns the ledger's operating currency.
func (a *App) Currency() money.Code { return a.currency }

// OpenAccount opens an account for an existing customer and, for savings,
// starts its interest accrual. The savings rate is fixed at open time from
// configuration.
func (a *App) OpenAccount(username, number string, opening money.Money, kind account.Type) (*account.Account, error) {
	acct, err := a.Registry.Open(username, number, opening, kind, a.Config.Interest.SavingsRate)
	if err != nil {
		return nil, err
	}
	if acct.Type() == account.Savings {
		if err := a.Scheduler.Track(acct); err != nil {
			a.Logger.Error("failed to schedule accrual", "account", number, "error", err)
		}
	}
	return acct, nil
}

// GenerateReport kicks off asynchronous report generation to the configured
// sink and returns the completion channel.
func (a *App) GenerateReport() <-chan error {
	return a.Reports.Run(a.Config.Report.Path)
}

// Close shuts down background work: the engine drains queued transactions
// and the scheduler stops future accrual without cutting off an in-flight
// firing.
func (a *App) Close() {
	a.Engine.Close()
	a.Scheduler.Close()
}
