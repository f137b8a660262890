package model

import "github.com/shopspring/decimal"

// Product is the catalog entry an order item references.
type Product struct {
	ID       int64
	Name     string
	TaxRate  *decimal.Decimal
	IsActive bool
}
