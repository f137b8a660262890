package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/quoteflow/internal/billing"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	testhelpers "github.com/polkiloo/quoteflow/internal/test"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

var completeInfo = model.InvoiceInfo{NationalID: "0012345678", Address: "12 Harbor Rd", PostalCode: "1234567890"}

type env struct {
	store  *testhelpers.MemoryStore
	events *testhelpers.EventRecorder
	orders *usecase.OrderUseCase
	staff  model.Customer
	buyer  model.Customer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	recorder := &testhelpers.EventRecorder{}
	calc := billing.NewCalculator(billing.Config{DefaultTaxRate: decimal.NewFromInt(9), Scale: 0})
	log := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &env{
		store:  store,
		events: recorder,
		orders: usecase.NewOrderUseCase(store, calc, recorder, log),
		staff:  store.AddCustomer(model.Customer{Name: "staff", IsStaff: true}),
		buyer:  store.AddCustomer(model.Customer{Name: "buyer"}),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// placeOrder creates an order with one item per product, each requesting qty.
func (e *env) placeOrder(t *testing.T, customerID int64, category model.InvoiceCategory, qty int, products ...model.Product) *model.Order {
	t.Helper()
	items := make([]usecase.OrderItemInput, 0, len(products))
	for _, p := range products {
		items = append(items, usecase.OrderItemInput{ProductID: p.ID, Quantity: qty})
	}
	order, err := e.orders.CreateOrder(context.Background(), usecase.CreateOrderInput{
		CustomerID:      customerID,
		InvoiceCategory: category,
		Items:           items,
	})
	require.NoError(t, err)
	return order
}

// price quotes every item of order at unitPrice with its requested quantity.
func (e *env) price(t *testing.T, order *model.Order, unitPrice string) *model.Order {
	t.Helper()
	updates := make([]model.PricingUpdate, 0, len(order.Items))
	for _, item := range order.Items {
		updates = append(updates, model.PricingUpdate{ItemID: item.ID, Price: ptr(dec(unitPrice))})
	}
	priced, err := e.orders.SubmitPricing(context.Background(), usecase.SubmitPricingInput{
		OrderID: order.ID,
		StaffID: e.staff.ID,
		Items:   updates,
	})
	require.NoError(t, err)
	return priced
}

func (e *env) product(taxRate *decimal.Decimal) model.Product {
	return e.store.AddProduct(model.Product{Name: "item", TaxRate: taxRate, IsActive: true})
}
