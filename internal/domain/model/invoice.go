package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/pkg/money"
)

// InvoiceType distinguishes provisional views from the issued record.
type InvoiceType string

const (
	InvoiceTypePre   InvoiceType = "pre_invoice"
	InvoiceTypeFinal InvoiceType = "final_invoice"
)

// Invoice is the financial record of a confirmed order.
type Invoice struct {
	ID            int64
	OrderID       int64
	InvoiceNumber string
	InvoiceType   InvoiceType
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	TaxRate       decimal.Decimal
	TaxAmount     decimal.Decimal
	PayableAmount decimal.Decimal
	IsFinalized   bool
	IssuedAt      time.Time
}

// Recalculate derives tax and payable amounts from total, discount and rate.
// It must run before every save.
func (inv *Invoice) Recalculate(scale int32) {
	subtotal := inv.TotalAmount.Sub(inv.Discount)
	inv.TaxAmount = money.Round(money.Percent(subtotal, inv.TaxRate), scale)
	inv.PayableAmount = money.Round(subtotal.Add(inv.TaxAmount), scale)
}

// Subtotal is the total after discount.
func (inv Invoice) Subtotal() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.Discount)
}
