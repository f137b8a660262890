package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polkiloo/quoteflow/internal/config"
)

func TestNewFromConfig(t *testing.T) {
	calc := newFromConfig(&config.Config{DefaultTaxRate: d("10"), CurrencyScale: 2})

	assert.Equal(t, int32(2), calc.Scale())
	assert.True(t, calc.cfg.DefaultTaxRate.Equal(d("10")))
}
