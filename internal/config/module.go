package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module loads configuration once per process and reports insecure
// settings at startup.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(reportInsecureDefaults),
)

func reportInsecureDefaults(cfg *Config, logger *slog.Logger) {
	if cfg.UsesDefaultSecret() {
		logger.Warn("actor tokens are signed with the built-in development secret; set TOKEN_SECRET or TOKEN_SECRET_FILE")
	}
	if cfg.WebhookURL == "" {
		logger.Info("no notification webhook configured, events are only logged")
	}
}
