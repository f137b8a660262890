package webhook

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/quoteflow/internal/config"
)

// Module exposes the notifier implementation to fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	if p.Config.WebhookURL == "" {
		return NewLogNotifier(p.Logger), nil
	}
	return NewHTTPNotifier(p.Config.WebhookURL, p.Logger)
}
