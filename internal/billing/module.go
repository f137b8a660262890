package billing

import (
	"go.uber.org/fx"

	"github.com/polkiloo/quoteflow/internal/config"
)

// Module provides the Calculator built from configured business constants.
var Module = fx.Provide(newFromConfig)

func newFromConfig(cfg *config.Config) *Calculator {
	return NewCalculator(Config{DefaultTaxRate: cfg.DefaultTaxRate, Scale: cfg.CurrencyScale})
}
