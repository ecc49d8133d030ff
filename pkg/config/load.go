package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment. A .env file, if present at
// one of the given paths (or the working directory when none are given), is
// loaded first; real environment variables win over file entries.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	loaded := false
	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("environment file not found", "path", path)
			continue
		}
		logger.Info("environment loaded from file", "path", path)
		loaded = true
		break
	}
	if !loaded && len(envFilePath) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment variables")
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("config loaded",
		"env", cfg.Env,
		"currency", cfg.Currency,
		"interest_period", cfg.Interest.Period,
		"savings_rate", cfg.Interest.SavingsRate,
		"engine_workers", cfg.Engine.Workers,
		"report_path", cfg.Report.Path,
		"admin_gate_configured", cfg.Admin.CredentialHash != "",
	)
	return &cfg, nil
}
