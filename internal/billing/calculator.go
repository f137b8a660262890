// Package billing derives quotes, invoices and commissions from order state.
// Every function is pure; business constants arrive through Config.
package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/pkg/money"
)

// Config carries the business constants used by the calculators.
type Config struct {
	DefaultTaxRate decimal.Decimal
	Scale          int32
}

// Calculator computes taxes and commissions.
type Calculator struct {
	cfg Config
}

// NewCalculator constructs a Calculator.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Scale is the number of decimal places money amounts carry.
func (c *Calculator) Scale() int32 {
	return c.cfg.Scale
}

// FitsScale reports whether amount needs no rounding at the configured scale.
func (c *Calculator) FitsScale(amount decimal.Decimal) bool {
	return amount.Equal(money.Round(amount, c.cfg.Scale))
}

// Line is one quoted order item with its tax.
type Line struct {
	ItemID    int64
	ProductID int64
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
	TaxRate   decimal.Decimal
	Tax       decimal.Decimal
}

// Quote is the tax breakdown of an order.
type Quote struct {
	Category model.InvoiceCategory
	Lines    []Line
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Payable  decimal.Decimal
}

// Quote prices the quoted lines of order. Unofficial orders carry no tax;
// official lines use their product's rate, falling back to the default one.
func (c *Calculator) Quote(order *model.Order, products map[int64]model.Product) Quote {
	q := Quote{Category: order.InvoiceCategory, Subtotal: decimal.Zero, Tax: decimal.Zero}
	for _, item := range order.Items {
		if !item.IsQuoted() {
			continue
		}
		line := Line{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			UnitPrice: item.QuotedUnitPrice,
			Quantity:  item.FinalQuantity,
			Total:     item.TotalPrice(),
			TaxRate:   decimal.Zero,
			Tax:       decimal.Zero,
		}
		if order.IsOfficial() {
			line.TaxRate = c.taxRate(products[item.ProductID])
			line.Tax = money.Percent(line.Total, line.TaxRate)
		}
		q.Lines = append(q.Lines, line)
		q.Subtotal = q.Subtotal.Add(line.Total)
		q.Tax = q.Tax.Add(line.Tax)
	}
	q.Subtotal = money.Round(q.Subtotal, c.cfg.Scale)
	q.Tax = money.Round(q.Tax, c.cfg.Scale)
	q.Payable = q.Subtotal.Add(q.Tax)
	return q
}

func (c *Calculator) taxRate(p model.Product) decimal.Decimal {
	if p.TaxRate != nil {
		return *p.TaxRate
	}
	return c.cfg.DefaultTaxRate
}

// EffectiveTaxRate blends the line rates into the single rate an invoice
// stores. It is zero for unofficial quotes and empty subtotals.
func (c *Calculator) EffectiveTaxRate(q Quote) decimal.Decimal {
	if q.Category != model.InvoiceCategoryOfficial {
		return decimal.Zero
	}
	return money.RateOf(q.Tax, q.Subtotal)
}

// IssueInvoice builds the final, finalized invoice for a confirmed order.
func (c *Calculator) IssueInvoice(order *model.Order, q Quote, at time.Time) *model.Invoice {
	inv := c.invoice(order, q, at)
	inv.InvoiceNumber = InvoiceNumber(at.Year(), order.ID)
	inv.InvoiceType = model.InvoiceTypeFinal
	inv.IsFinalized = true
	return inv
}

// PreInvoice builds the provisional invoice shown before approval. It is
// never stored.
func (c *Calculator) PreInvoice(order *model.Order, q Quote, at time.Time) *model.Invoice {
	inv := c.invoice(order, q, at)
	inv.InvoiceNumber = fmt.Sprintf("PRE-%d-%06d", at.Year(), order.ID)
	inv.InvoiceType = model.InvoiceTypePre
	return inv
}

func (c *Calculator) invoice(order *model.Order, q Quote, at time.Time) *model.Invoice {
	inv := &model.Invoice{
		OrderID:     order.ID,
		TotalAmount: money.Round(order.QuotedTotal, c.cfg.Scale),
		Discount:    decimal.Zero,
		TaxRate:     c.EffectiveTaxRate(q),
		IssuedAt:    at,
	}
	inv.Recalculate(c.cfg.Scale)
	return inv
}

// InvoiceNumber formats the stable invoice identifier of an order.
func InvoiceNumber(year int, orderID int64) string {
	return fmt.Sprintf("INV-%d-%06d", year, orderID)
}

// EffectiveCommissionRate is the custom rate when set, else the dealer's.
func EffectiveCommissionRate(custom *decimal.Decimal, dealerDefault decimal.Decimal) decimal.Decimal {
	if custom != nil {
		return *custom
	}
	return dealerDefault
}

// Commission returns total × rate / 100 rounded to the currency scale.
func (c *Calculator) Commission(total, rate decimal.Decimal) decimal.Decimal {
	return money.Round(money.Percent(total, rate), c.cfg.Scale)
}

// NewCommission builds the commission row owed for a completed order. It
// reports false when no dealer is attached.
func (c *Calculator) NewCommission(order *model.Order, at time.Time) (*model.DealerCommission, bool) {
	if !order.HasDealer() {
		return nil, false
	}
	rate := *order.CommissionRate
	return &model.DealerCommission{
		DealerID:         *order.DealerID,
		OrderID:          order.ID,
		OrderTotal:       order.QuotedTotal,
		CommissionRate:   rate,
		CommissionAmount: c.Commission(order.QuotedTotal, rate),
		CreatedAt:        at,
	}, true
}
