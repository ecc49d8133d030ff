// Package config holds the application configuration, loaded from the
// environment with optional .env overrides.
package config

import (
	"time"
)

// Interest configures the savings accrual process.
type Interest struct {
	// Period between accrual firings per savings account.
	Period time.Duration `envconfig:"PERIOD" default:"1m"`
	// SavingsRate is applied at account-open time to new savings accounts.
	SavingsRate float64 `envconfig:"SAVINGS_RATE" default:"0.02"`
}

// Engine configures the transaction worker pool.
type Engine struct {
	Workers int `envconfig:"WORKERS" default:"4"`
	Queue   int `envconfig:"QUEUE" default:"64"`
}

// Report configures the report sink.
type Report struct {
	Path string `envconfig:"PATH" default:"accounts_report.txt"`
}

// Admin configures the capability gate for admin-only operations.
type Admin struct {
	// CredentialHash is the bcrypt hash of the shared admin credential.
	// Empty means admin operations are disabled.
	CredentialHash string `envconfig:"CREDENTIAL_HASH"`
}

// Log configures the structured logger.
type Log struct {
	Level  int    `envconfig:"LEVEL" default:"0"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// App is the root configuration.
type App struct {
	Env      string    `envconfig:"APP_ENV" default:"development"`
	Currency string    `envconfig:"CURRENCY" default:"USD"`
	Interest *Interest `envconfig:"INTEREST"`
	Engine   *Engine   `envconfig:"ENGINE"`
	Report   *Report   `envconfig:"REPORT"`
	Admin    *Admin    `envconfig:"ADMIN"`
	Log      *Log      `envconfig:"LOG"`
}
