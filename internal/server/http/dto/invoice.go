package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceResponse describes a pre or final invoice.
type InvoiceResponse struct {
	ID            int64           `json:"id,omitempty"`
	OrderID       int64           `json:"order_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceType   string          `json:"invoice_type"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	PayableAmount decimal.Decimal `json:"payable_amount"`
	IsFinalized   bool            `json:"is_finalized"`
	IssuedAt      time.Time       `json:"issued_at"`
}

// QuoteLineResponse is the tax breakdown of one item.
type QuoteLineResponse struct {
	ItemID    int64           `json:"item_id"`
	ProductID int64           `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Tax       decimal.Decimal `json:"tax"`
}

// PreInvoiceResponse describes GET /api/orders/:id/pre-invoice.
type PreInvoiceResponse struct {
	Invoice InvoiceResponse     `json:"invoice"`
	Lines   []QuoteLineResponse `json:"lines"`
}
