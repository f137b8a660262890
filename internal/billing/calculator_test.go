package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

func newCalculator() *Calculator {
	return NewCalculator(Config{DefaultTaxRate: d("9"), Scale: 0})
}

func pricedOrder(category model.InvoiceCategory) *model.Order {
	order := &model.Order{
		ID:              42,
		Status:          model.OrderStatusWaitingApproval,
		InvoiceCategory: category,
		Items: []model.OrderItem{
			{ID: 1, ProductID: 10, QuotedUnitPrice: d("1000"), FinalQuantity: 2},
		},
	}
	order.RecomputeTotal()
	return order
}

func TestOfficialQuoteUsesProductRate(t *testing.T) {
	calc := newCalculator()
	order := pricedOrder(model.InvoiceCategoryOfficial)
	products := map[int64]model.Product{10: {ID: 10, TaxRate: ptr(d("9"))}}

	q := calc.Quote(order, products)

	require.Len(t, q.Lines, 1)
	assert.True(t, q.Lines[0].Tax.Equal(d("180")), "line tax %s", q.Lines[0].Tax)
	assert.True(t, q.Tax.Equal(d("180")))
	assert.True(t, q.Payable.Equal(d("2180")))

	inv := calc.IssueInvoice(order, q, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, inv.TaxAmount.Equal(d("180")), "invoice tax %s", inv.TaxAmount)
	assert.True(t, inv.PayableAmount.Equal(d("2180")))
	assert.Equal(t, "INV-2025-000042", inv.InvoiceNumber)
	assert.Equal(t, model.InvoiceTypeFinal, inv.InvoiceType)
	assert.True(t, inv.IsFinalized)
	assert.True(t, inv.Discount.IsZero())
}

func TestUnofficialQuoteHasNoTax(t *testing.T) {
	calc := newCalculator()
	order := pricedOrder(model.InvoiceCategoryUnofficial)
	products := map[int64]model.Product{10: {ID: 10, TaxRate: ptr(d("9"))}}

	q := calc.Quote(order, products)
	inv := calc.IssueInvoice(order, q, time.Now())

	assert.True(t, q.Tax.IsZero())
	assert.True(t, q.Payable.Equal(d("2000")))
	assert.True(t, inv.TaxRate.IsZero())
	assert.True(t, inv.TaxAmount.IsZero())
	assert.True(t, inv.PayableAmount.Equal(d("2000")))
}

func TestOfficialQuoteFallsBackToDefaultRate(t *testing.T) {
	calc := NewCalculator(Config{DefaultTaxRate: d("10"), Scale: 2})
	order := &model.Order{
		ID:              1,
		InvoiceCategory: model.InvoiceCategoryOfficial,
		Items: []model.OrderItem{
			{ID: 1, ProductID: 10, QuotedUnitPrice: d("100"), FinalQuantity: 1},
			{ID: 2, ProductID: 11, QuotedUnitPrice: d("50"), FinalQuantity: 2},
			{ID: 3, ProductID: 12, QuotedUnitPrice: d("0"), FinalQuantity: 4},
		},
	}
	order.RecomputeTotal()
	products := map[int64]model.Product{
		10: {ID: 10, TaxRate: ptr(d("5"))},
		11: {ID: 11},
	}

	q := calc.Quote(order, products)

	require.Len(t, q.Lines, 2)
	assert.True(t, q.Subtotal.Equal(d("200")))
	assert.True(t, q.Tax.Equal(d("15")), "tax %s", q.Tax)
	assert.True(t, calc.EffectiveTaxRate(q).Equal(d("7.5")))

	inv := calc.IssueInvoice(order, q, time.Now())
	assert.True(t, inv.TaxAmount.Equal(q.Tax))
	assert.True(t, inv.PayableAmount.Equal(d("215")))
}

func TestPreInvoiceIsProvisional(t *testing.T) {
	calc := newCalculator()
	order := pricedOrder(model.InvoiceCategoryOfficial)
	q := calc.Quote(order, nil)

	inv := calc.PreInvoice(order, q, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, model.InvoiceTypePre, inv.InvoiceType)
	assert.False(t, inv.IsFinalized)
	assert.Equal(t, "PRE-2025-000042", inv.InvoiceNumber)
	assert.True(t, inv.PayableAmount.Equal(d("2180")))
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2024-000001", InvoiceNumber(2024, 1))
	assert.Equal(t, "INV-2024-1234567", InvoiceNumber(2024, 1234567))
}

func TestCommission(t *testing.T) {
	calc := newCalculator()
	total := d("1000000")

	rate := EffectiveCommissionRate(nil, d("5"))
	assert.True(t, calc.Commission(total, rate).Equal(d("50000")))

	rate = EffectiveCommissionRate(ptr(d("7.5")), d("5"))
	assert.True(t, calc.Commission(total, rate).Equal(d("75000")))
}

func TestNewCommission(t *testing.T) {
	calc := newCalculator()
	order := &model.Order{ID: 9, QuotedTotal: d("1000000")}

	_, ok := calc.NewCommission(order, time.Now())
	assert.False(t, ok)

	dealer := int64(3)
	order.DealerID = &dealer
	order.CommissionRate = ptr(d("5"))

	c, ok := calc.NewCommission(order, time.Now())
	require.True(t, ok)
	assert.Equal(t, int64(3), c.DealerID)
	assert.Equal(t, int64(9), c.OrderID)
	assert.True(t, c.CommissionAmount.Equal(d("50000")))
	assert.False(t, c.IsPaid)
}

func TestInvoiceAmountsAgreeAtScale(t *testing.T) {
	tests := []struct {
		name     string
		scale    int32
		category model.InvoiceCategory
		price    string
		qty      int
	}{
		{name: "unofficial fractional price at scale 0", scale: 0, category: model.InvoiceCategoryUnofficial, price: "10.5", qty: 1},
		{name: "official fractional price at scale 0", scale: 0, category: model.InvoiceCategoryOfficial, price: "10.5", qty: 3},
		{name: "official cents at scale 2", scale: 2, category: model.InvoiceCategoryOfficial, price: "10.55", qty: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := NewCalculator(Config{DefaultTaxRate: d("9"), Scale: tc.scale})
			order := &model.Order{
				ID:              3,
				InvoiceCategory: tc.category,
				Items:           []model.OrderItem{{ID: 1, ProductID: 10, QuotedUnitPrice: d(tc.price), FinalQuantity: tc.qty}},
			}
			order.RecomputeTotal()

			inv := calc.IssueInvoice(order, calc.Quote(order, nil), time.Now())

			assert.True(t, calc.FitsScale(inv.TotalAmount), "total %s", inv.TotalAmount)
			assert.True(t, inv.PayableAmount.Equal(inv.TotalAmount.Sub(inv.Discount).Add(inv.TaxAmount)),
				"payable %s total %s tax %s", inv.PayableAmount, inv.TotalAmount, inv.TaxAmount)
		})
	}
}

func TestFitsScale(t *testing.T) {
	calc := NewCalculator(Config{Scale: 2})
	assert.Equal(t, int32(2), calc.Scale())
	assert.True(t, calc.FitsScale(d("10.50")))
	assert.True(t, calc.FitsScale(d("7")))
	assert.False(t, calc.FitsScale(d("10.505")))
}
