package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/quoteflow/internal/adapter/webhook"
	"github.com/polkiloo/quoteflow/internal/app"
	"github.com/polkiloo/quoteflow/internal/billing"
	"github.com/polkiloo/quoteflow/internal/config"
	"github.com/polkiloo/quoteflow/internal/events"
	"github.com/polkiloo/quoteflow/internal/logger"
	"github.com/polkiloo/quoteflow/internal/pkg/auth"
	"github.com/polkiloo/quoteflow/internal/server/http/handlers"
	"github.com/polkiloo/quoteflow/internal/server/http/router"
	"github.com/polkiloo/quoteflow/internal/storage/postgres"
	"github.com/polkiloo/quoteflow/internal/usecase"
	"github.com/polkiloo/quoteflow/internal/worker"
)

// Module assembles the full application graph. Extra options are appended
// last so callers can replace any provided value.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		billing.Module,
		postgres.Module,
		// The queue is registered before app so it closes after the
		// dispatcher has stopped.
		events.Module,
		webhook.Module,
		usecase.Module,
		fx.Provide(
			func(q events.Queue) usecase.EventPublisher { return q },
			func(q events.Queue) worker.Source { return q },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.QuoteFacade) handlers.QuoteFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
