package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

func TestCreateOrder(t *testing.T) {
	e := newEnv(t)
	p := e.product(nil)

	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 3, p)
	assert.NotZero(t, order.ID)
	assert.Equal(t, model.OrderStatusPendingPricing, order.Status)
	assert.True(t, order.QuotedTotal.IsZero())
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].RequestedQuantity)
	assert.Equal(t, []model.EventType{model.EventOrderSubmitted}, e.events.Types())
}

func TestCreateOrderFailures(t *testing.T) {
	e := newEnv(t)
	active := e.product(nil)
	inactive := e.store.AddProduct(model.Product{Name: "old", IsActive: false})

	tests := []struct {
		name   string
		in     usecase.CreateOrderInput
		target error
	}{
		{
			name:   "empty items",
			in:     usecase.CreateOrderInput{CustomerID: e.buyer.ID, InvoiceCategory: model.InvoiceCategoryUnofficial},
			target: domainErrors.ErrEmptyOrder,
		},
		{
			name:   "unknown invoice type",
			in:     usecase.CreateOrderInput{CustomerID: e.buyer.ID, InvoiceCategory: "gift", Items: []usecase.OrderItemInput{{ProductID: active.ID, Quantity: 1}}},
			target: domainErrors.ErrValidation,
		},
		{
			name:   "non-positive quantity",
			in:     usecase.CreateOrderInput{CustomerID: e.buyer.ID, InvoiceCategory: model.InvoiceCategoryUnofficial, Items: []usecase.OrderItemInput{{ProductID: active.ID}}},
			target: domainErrors.ErrValidation,
		},
		{
			name:   "inactive product",
			in:     usecase.CreateOrderInput{CustomerID: e.buyer.ID, InvoiceCategory: model.InvoiceCategoryUnofficial, Items: []usecase.OrderItemInput{{ProductID: inactive.ID, Quantity: 1}}},
			target: domainErrors.ErrProductInactive,
		},
		{
			name:   "missing product",
			in:     usecase.CreateOrderInput{CustomerID: e.buyer.ID, InvoiceCategory: model.InvoiceCategoryUnofficial, Items: []usecase.OrderItemInput{{ProductID: 999, Quantity: 1}}},
			target: domainErrors.ErrNotFound,
		},
		{
			name:   "missing customer",
			in:     usecase.CreateOrderInput{CustomerID: 999, InvoiceCategory: model.InvoiceCategoryUnofficial, Items: []usecase.OrderItemInput{{ProductID: active.ID, Quantity: 1}}},
			target: domainErrors.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.orders.CreateOrder(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.target)
		})
	}
	assert.Empty(t, e.events.Types())
}

func TestCreateOfficialOrderRequiresCustomerInfo(t *testing.T) {
	e := newEnv(t)
	p := e.product(nil)
	in := usecase.CreateOrderInput{
		CustomerID:      e.buyer.ID,
		InvoiceCategory: model.InvoiceCategoryOfficial,
		Items:           []usecase.OrderItemInput{{ProductID: p.ID, Quantity: 1}},
		CustomerInfo:    &model.InvoiceInfo{NationalID: "12ab", PostalCode: "123"},
	}

	_, err := e.orders.CreateOrder(context.Background(), in)
	require.ErrorIs(t, err, domainErrors.ErrIncompleteCustomerInfo)
	var validation *domainErrors.ValidationError
	require.ErrorAs(t, err, &validation)
	fields := make([]string, 0, len(validation.Fields))
	for _, f := range validation.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"national_id", "address", "postal_code"}, fields)

	info := completeInfo
	in.CustomerInfo = &info
	order, err := e.orders.CreateOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceCategoryOfficial, order.InvoiceCategory)

	stored, _ := e.store.Customer(e.buyer.ID)
	assert.Equal(t, completeInfo, stored.InvoiceInfo)
}

func TestSubmitPricingRecomputesTotal(t *testing.T) {
	e := newEnv(t)
	a, b, c := e.product(nil), e.product(nil), e.product(nil)
	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 2, a, b, c)

	priced, err := e.orders.SubmitPricing(context.Background(), usecase.SubmitPricingInput{
		OrderID: order.ID,
		StaffID: e.staff.ID,
		Items: []model.PricingUpdate{
			{ItemID: order.Items[0].ID, Price: ptr(dec("150")), Quantity: ptr(4)},
			{ItemID: order.Items[1].ID, Price: ptr(dec("99"))},
			{ItemID: order.Items[2].ID, Notes: ptr("out of stock")},
		},
		AdminComment: " ships monday ",
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusWaitingApproval, priced.Status)
	assert.True(t, priced.QuotedTotal.Equal(dec("798")), "got %s", priced.QuotedTotal)
	assert.Equal(t, "ships monday", priced.AdminComment)
	require.NotNil(t, priced.PricedBy)
	assert.Equal(t, e.staff.ID, *priced.PricedBy)
	assert.NotNil(t, priced.PricingDate)

	stored, _ := e.store.Order(order.ID)
	assert.Equal(t, model.OrderStatusWaitingApproval, stored.Status)
	assert.True(t, stored.QuotedTotal.Equal(dec("798")))
	assert.Equal(t, 4, stored.Items[0].FinalQuantity)
	assert.Equal(t, 2, stored.Items[1].FinalQuantity)
	assert.Equal(t, 2, stored.Items[0].RequestedQuantity)
	assert.Equal(t, "out of stock", stored.Items[2].AdminNotes)
	assert.Equal(t, []model.EventType{model.EventOrderSubmitted, model.EventPricingReady}, e.events.Types())
}

func TestSubmitPricingRejectionsLeaveOrderUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		updates func(item model.OrderItem) []model.PricingUpdate
		target  error
	}{
		{
			name: "no valid pricing",
			updates: func(item model.OrderItem) []model.PricingUpdate {
				return []model.PricingUpdate{{ItemID: item.ID, Price: ptr(decimal.Zero), Quantity: ptr(3)}}
			},
			target: domainErrors.ErrNoValidPricing,
		},
		{
			name: "priced with zero quantity",
			updates: func(item model.OrderItem) []model.PricingUpdate {
				return []model.PricingUpdate{{ItemID: item.ID, Price: ptr(dec("10")), Quantity: ptr(0)}}
			},
			target: domainErrors.ErrNoValidPricing,
		},
		{
			name: "negative price",
			updates: func(item model.OrderItem) []model.PricingUpdate {
				return []model.PricingUpdate{{ItemID: item.ID, Price: ptr(dec("-1")), Quantity: ptr(1)}}
			},
			target: domainErrors.ErrNegativeValue,
		},
		{
			name: "negative quantity",
			updates: func(item model.OrderItem) []model.PricingUpdate {
				return []model.PricingUpdate{{ItemID: item.ID, Price: ptr(dec("10")), Quantity: ptr(-2)}}
			},
			target: domainErrors.ErrNegativeValue,
		},
		{
			name: "foreign item",
			updates: func(item model.OrderItem) []model.PricingUpdate {
				return []model.PricingUpdate{{ItemID: item.ID + 1000, Price: ptr(dec("10"))}}
			},
			target: domainErrors.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 3, e.product(nil))
			before, _ := e.store.Order(order.ID)

			_, err := e.orders.SubmitPricing(context.Background(), usecase.SubmitPricingInput{
				OrderID: order.ID,
				StaffID: e.staff.ID,
				Items:   tc.updates(order.Items[0]),
			})
			require.ErrorIs(t, err, tc.target)

			after, _ := e.store.Order(order.ID)
			assert.Equal(t, before, after)
			assert.Equal(t, model.OrderStatusPendingPricing, after.Status)
		})
	}
}

func TestSubmitPricingRejectsPricesFinerThanScale(t *testing.T) {
	e := newEnv(t)
	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil), e.product(nil))
	before, _ := e.store.Order(order.ID)

	_, err := e.orders.SubmitPricing(context.Background(), usecase.SubmitPricingInput{
		OrderID: order.ID,
		StaffID: e.staff.ID,
		Items: []model.PricingUpdate{
			{ItemID: order.Items[0].ID, Price: ptr(dec("10.00"))},
			{ItemID: order.Items[1].ID, Price: ptr(dec("10.5"))},
		},
	})
	var validation *domainErrors.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 1)
	assert.Equal(t, "items[1].price", validation.Fields[0].Field)

	after, _ := e.store.Order(order.ID)
	assert.Equal(t, before, after)
	assert.Equal(t, []model.EventType{model.EventOrderSubmitted}, e.events.Types())
}

func TestSubmitPricingWrongState(t *testing.T) {
	e := newEnv(t)
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "10")

	_, err := e.orders.SubmitPricing(context.Background(), usecase.SubmitPricingInput{
		OrderID: order.ID,
		StaffID: e.staff.ID,
		Items:   []model.PricingUpdate{{ItemID: order.Items[0].ID, Price: ptr(dec("20"))}},
	})
	var state *domainErrors.StateError
	require.ErrorAs(t, err, &state)
	assert.Equal(t, string(model.OrderStatusWaitingApproval), state.Current)
	assert.Equal(t, []string{string(model.OrderStatusPendingPricing)}, state.Required)
}

func TestSubmitPricingIsAtomic(t *testing.T) {
	e := newEnv(t)
	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil))
	before, _ := e.store.Order(order.ID)
	boom := errors.New("disk full")
	e.store.FailOn = func(op string) error {
		if op == "orders.update" {
			return boom
		}
		return nil
	}

	_, err := e.orders.SubmitPricing(context.Background(), usecase.SubmitPricingInput{
		OrderID: order.ID,
		StaffID: e.staff.ID,
		Items:   []model.PricingUpdate{{ItemID: order.Items[0].ID, Price: ptr(dec("10"))}},
	})
	require.ErrorIs(t, err, boom)

	after, _ := e.store.Order(order.ID)
	assert.Equal(t, before, after, "item writes must roll back with the order update")
	assert.Equal(t, []model.EventType{model.EventOrderSubmitted}, e.events.Types())
}

func TestApproveOrderIssuesSingleInvoice(t *testing.T) {
	e := newEnv(t)
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 2, e.product(nil)), "1000")

	confirmed, invoice, err := e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.CustomerResponseDate)

	assert.Equal(t, model.InvoiceTypeFinal, invoice.InvoiceType)
	assert.True(t, invoice.IsFinalized)
	assert.True(t, invoice.TaxAmount.IsZero())
	assert.True(t, invoice.PayableAmount.Equal(dec("2000")))
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"))
	assert.True(t, strings.HasSuffix(invoice.InvoiceNumber, fmt.Sprintf("-%06d", order.ID)))

	_, _, err = e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
	require.ErrorIs(t, err, domainErrors.ErrInvalidState)

	assert.Equal(t, 1, e.store.InvoiceCount(order.ID))
	stored, err := e.store.Invoices().GetByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNumber, stored.InvoiceNumber)
}

func TestApproveOfficialOrderTax(t *testing.T) {
	e := newEnv(t)
	buyer := e.store.AddCustomer(model.Customer{Name: "company", InvoiceInfo: completeInfo})
	order := e.placeOrder(t, buyer.ID, model.InvoiceCategoryOfficial, 2, e.product(ptr(dec("9"))))
	order = e.price(t, order, "1000")

	_, invoice, err := e.orders.ApproveOrder(context.Background(), buyer.ID, order.ID)
	require.NoError(t, err)
	assert.True(t, invoice.TotalAmount.Equal(dec("2000")))
	assert.True(t, invoice.TaxAmount.Equal(dec("180")), "got %s", invoice.TaxAmount)
	assert.True(t, invoice.PayableAmount.Equal(dec("2180")), "got %s", invoice.PayableAmount)
}

func TestApproveOfficialOrderWithIncompleteInfo(t *testing.T) {
	e := newEnv(t)
	buyer := e.store.AddCustomer(model.Customer{Name: "company", InvoiceInfo: completeInfo})
	order := e.price(t, e.placeOrder(t, buyer.ID, model.InvoiceCategoryOfficial, 1, e.product(nil)), "10")

	// Info went stale after the order was created.
	require.NoError(t, e.store.Customers().UpdateInvoiceInfo(context.Background(), buyer.ID, model.InvoiceInfo{NationalID: completeInfo.NationalID}))

	_, _, err := e.orders.ApproveOrder(context.Background(), buyer.ID, order.ID)
	var rule *domainErrors.BusinessRuleError
	require.ErrorAs(t, err, &rule)
	assert.ErrorIs(t, err, domainErrors.ErrIncompleteCustomerInfo)
	assert.ElementsMatch(t, []string{"address", "postal_code"}, rule.MissingFields)

	stored, _ := e.store.Order(order.ID)
	assert.Equal(t, model.OrderStatusWaitingApproval, stored.Status)
	assert.Zero(t, e.store.InvoiceCount(order.ID))
}

func TestApproveOrderRollsBackInvoice(t *testing.T) {
	e := newEnv(t)
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "10")
	e.store.FailOn = func(op string) error {
		if op == "orders.update" {
			return errors.New("connection lost")
		}
		return nil
	}

	_, _, err := e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
	require.Error(t, err)
	assert.Zero(t, e.store.InvoiceCount(order.ID))
	stored, _ := e.store.Order(order.ID)
	assert.Equal(t, model.OrderStatusWaitingApproval, stored.Status)
}

func TestApproveForeignOrder(t *testing.T) {
	e := newEnv(t)
	other := e.store.AddCustomer(model.Customer{Name: "other"})
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "10")

	_, _, err := e.orders.ApproveOrder(context.Background(), other.ID, order.ID)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)
}

func TestRejectOrder(t *testing.T) {
	e := newEnv(t)
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "10")

	_, err := e.orders.RejectOrder(context.Background(), e.buyer.ID, order.ID, "   ")
	require.ErrorIs(t, err, domainErrors.ErrMissingReason)
	require.ErrorIs(t, err, domainErrors.ErrValidation)
	stored, _ := e.store.Order(order.ID)
	assert.Equal(t, model.OrderStatusWaitingApproval, stored.Status)

	rejected, err := e.orders.RejectOrder(context.Background(), e.buyer.ID, order.ID, "found cheaper")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusRejected, rejected.Status)
	assert.Equal(t, "found cheaper", rejected.RejectionReason)
	assert.NotNil(t, rejected.CustomerResponseDate)

	_, _, err = e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState, "rejected orders stay terminal")

	events := e.events.Snapshot()
	last := events[len(events)-1]
	assert.Equal(t, model.EventOrderRejected, last.Type)
	assert.Equal(t, "found cheaper", last.Reference)
}

func TestCancelOrder(t *testing.T) {
	e := newEnv(t)
	other := e.store.AddCustomer(model.Customer{Name: "other"})
	p := e.product(nil)

	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, p)
	_, err := e.orders.CancelOrder(context.Background(), &other, order.ID)
	require.ErrorIs(t, err, domainErrors.ErrForbidden)

	cancelled, err := e.orders.CancelOrder(context.Background(), &e.buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	staffOrder := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, p)
	_, err = e.orders.CancelOrder(context.Background(), &e.staff, staffOrder.ID)
	require.NoError(t, err)

	priced := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, p), "5")
	_, err = e.orders.CancelOrder(context.Background(), &e.buyer, priced.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
}

func TestDealerCommissionOnCompletion(t *testing.T) {
	tests := []struct {
		name     string
		custom   *decimal.Decimal
		expected string
	}{
		{name: "dealer default rate", expected: "50000"},
		{name: "custom rate", custom: ptr(dec("7.5")), expected: "75000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			dealer := e.store.AddCustomer(model.Customer{Name: "dealer", IsDealer: true, DealerCommissionRate: dec("5")})
			order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "1000000")

			assigned, err := e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: dealer.ID, CustomRate: tc.custom})
			require.NoError(t, err)
			require.NotNil(t, assigned.CommissionRate)
			assert.Empty(t, e.store.AllCommissions(), "commission is anchored at completion")

			_, _, err = e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
			require.NoError(t, err)
			completed, err := e.orders.CompleteOrder(context.Background(), order.ID)
			require.NoError(t, err)
			assert.Equal(t, model.OrderStatusCompleted, completed.Status)
			assert.NotNil(t, completed.CompletionDate)

			commissions := e.store.AllCommissions()
			require.Len(t, commissions, 1)
			assert.Equal(t, dealer.ID, commissions[0].DealerID)
			assert.True(t, commissions[0].CommissionAmount.Equal(dec(tc.expected)), "got %s", commissions[0].CommissionAmount)
			assert.False(t, commissions[0].IsPaid)
		})
	}
}

func TestReassignDealerKeepsSingleCommission(t *testing.T) {
	e := newEnv(t)
	first := e.store.AddCustomer(model.Customer{Name: "first", IsDealer: true, DealerCommissionRate: dec("5")})
	second := e.store.AddCustomer(model.Customer{Name: "second", IsDealer: true, DealerCommissionRate: dec("10")})
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "100")

	_, err := e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: first.ID})
	require.NoError(t, err)
	_, _, err = e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
	require.NoError(t, err)
	_, err = e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: second.ID})
	require.NoError(t, err)
	_, err = e.orders.CompleteOrder(context.Background(), order.ID)
	require.NoError(t, err)

	commissions := e.store.AllCommissions()
	require.Len(t, commissions, 1)
	assert.Equal(t, second.ID, commissions[0].DealerID)
	assert.True(t, commissions[0].CommissionAmount.Equal(dec("10")))

	_, err = e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: first.ID})
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState, "completed orders cannot change dealer")
}

func TestAssignDealerFailures(t *testing.T) {
	e := newEnv(t)
	dealer := e.store.AddCustomer(model.Customer{Name: "dealer", IsDealer: true, DealerCommissionRate: dec("5")})
	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil))

	_, err := e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: e.buyer.ID})
	assert.ErrorIs(t, err, domainErrors.ErrNotDealer)

	_, err = e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: dealer.ID, CustomRate: ptr(dec("101"))})
	assert.ErrorIs(t, err, domainErrors.ErrValidation)

	_, err = e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: 999, DealerID: dealer.ID})
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestCompleteOrderRequiresConfirmation(t *testing.T) {
	e := newEnv(t)
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "10")

	_, err := e.orders.CompleteOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidState)
}

func TestCompleteOrderRollsBackOnCommissionFailure(t *testing.T) {
	e := newEnv(t)
	dealer := e.store.AddCustomer(model.Customer{Name: "dealer", IsDealer: true, DealerCommissionRate: dec("5")})
	order := e.price(t, e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil)), "10")
	_, err := e.orders.AssignDealer(context.Background(), usecase.AssignDealerInput{OrderID: order.ID, DealerID: dealer.ID})
	require.NoError(t, err)
	_, _, err = e.orders.ApproveOrder(context.Background(), e.buyer.ID, order.ID)
	require.NoError(t, err)

	e.store.FailOn = func(op string) error {
		if op == "commissions.create" {
			return errors.New("constraint")
		}
		return nil
	}
	_, err = e.orders.CompleteOrder(context.Background(), order.ID)
	require.Error(t, err)

	stored, _ := e.store.Order(order.ID)
	assert.Equal(t, model.OrderStatusConfirmed, stored.Status)
	assert.NotContains(t, e.events.Types(), model.EventOrderCompleted)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	e := newEnv(t)
	e.events.Err = errors.New("queue full")

	order := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, e.product(nil))
	stored, ok := e.store.Order(order.ID)
	require.True(t, ok)
	assert.Equal(t, model.OrderStatusPendingPricing, stored.Status)
}

func TestOrderQueries(t *testing.T) {
	e := newEnv(t)
	other := e.store.AddCustomer(model.Customer{Name: "other"})
	p := e.product(nil)
	first := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, p)
	second := e.placeOrder(t, e.buyer.ID, model.InvoiceCategoryUnofficial, 1, p)
	e.placeOrder(t, other.ID, model.InvoiceCategoryUnofficial, 1, p)
	e.price(t, second, "10")

	mine, err := e.orders.ListCustomerOrders(context.Background(), e.buyer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := e.orders.ListByStatus(context.Background(), model.OrderStatusPendingPricing)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	got, err := e.orders.GetOrder(context.Background(), &e.buyer, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = e.orders.GetOrder(context.Background(), &other, first.ID)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, err = e.orders.GetOrder(context.Background(), &e.staff, first.ID)
	assert.NoError(t, err)

	_, err = e.orders.GetOrder(context.Background(), &e.staff, 999)
	var nf *domainErrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "order", nf.Entity)
}

func TestPreInvoice(t *testing.T) {
	e := newEnv(t)
	buyer := e.store.AddCustomer(model.Customer{Name: "company", InvoiceInfo: completeInfo})
	taxed, untaxed := e.product(ptr(dec("10"))), e.product(nil)
	order := e.placeOrder(t, buyer.ID, model.InvoiceCategoryOfficial, 1, taxed, untaxed)

	_, _, err := e.orders.PreInvoice(context.Background(), &buyer, order.ID)
	require.ErrorIs(t, err, domainErrors.ErrInvalidState, "unpriced orders have no pre-invoice")

	e.price(t, order, "100")
	invoice, quote, err := e.orders.PreInvoice(context.Background(), &buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceTypePre, invoice.InvoiceType)
	assert.False(t, invoice.IsFinalized)
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "PRE-"))
	require.Len(t, quote.Lines, 2)
	assert.True(t, quote.Lines[0].Tax.Equal(dec("10")))
	assert.True(t, quote.Lines[1].Tax.Equal(dec("9")), "default rate applies without a product rate")
	assert.True(t, invoice.TaxAmount.Equal(dec("19")), "got %s", invoice.TaxAmount)
	assert.True(t, invoice.PayableAmount.Equal(dec("219")))
	assert.Zero(t, e.store.InvoiceCount(order.ID), "pre-invoices are not stored")
}
