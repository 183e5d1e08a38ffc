package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/thrones-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig records the effective configuration without any secret values.
func logConfig(logger *slog.Logger, cfg *config.Config) {
	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate),
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))
	logger.Debug("auth configuration", slog.Bool("jwt_secret_present", cfg.Auth.JWTSecret != ""))
}
