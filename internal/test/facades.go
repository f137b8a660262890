package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/billing"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

// QuoteFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions return small fixed values.
type QuoteFacadeStub struct {
	AuthenticateFn       func(context.Context, string) (*model.Customer, error)
	CreateOrderFn        func(context.Context, usecase.CreateOrderInput) (*model.Order, error)
	OrderFn              func(context.Context, *model.Customer, int64) (*model.Order, error)
	CustomerOrdersFn     func(context.Context, int64) ([]model.Order, error)
	PreInvoiceFn         func(context.Context, *model.Customer, int64) (*model.Invoice, billing.Quote, error)
	ApproveOrderFn       func(context.Context, int64, int64) (*model.Order, *model.Invoice, error)
	RejectOrderFn        func(context.Context, int64, int64, string) (*model.Order, error)
	CancelOrderFn        func(context.Context, *model.Customer, int64) (*model.Order, error)
	OrdersByStatusFn     func(context.Context, model.OrderStatus) ([]model.Order, error)
	SubmitPricingFn      func(context.Context, usecase.SubmitPricingInput) (*model.Order, error)
	AssignDealerFn       func(context.Context, usecase.AssignDealerInput) (*model.Order, error)
	CompleteOrderFn      func(context.Context, int64) (*model.Order, error)
	PayCommissionsFn     func(context.Context, []int64, string) (*model.CommissionPayout, error)
	CreateCustomerFn     func(context.Context, usecase.CreateCustomerInput) (*model.Customer, error)
	IssueTokenFn         func(context.Context, int64) (string, error)
	CreditWalletFn       func(context.Context, int64, decimal.Decimal, string) (*model.Wallet, error)
	DebitWalletFn        func(context.Context, int64, decimal.Decimal, string) (*model.Wallet, error)
	UpdateInvoiceInfoFn  func(context.Context, int64, model.InvoiceInfo) (*model.Customer, error)
	WalletFn             func(context.Context, int64) (*model.Wallet, error)
	WalletTransactionsFn func(context.Context, int64) ([]model.WalletTransaction, error)
	DealerCommissionsFn  func(context.Context, *model.Customer) ([]model.DealerCommission, error)
	HealthCheckFn        func(context.Context) error
}

// SampleOrder returns an order with a single item in the given status.
func SampleOrder(id, customerID int64, status model.OrderStatus) *model.Order {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &model.Order{
		ID:              id,
		CustomerID:      customerID,
		Status:          status,
		InvoiceCategory: model.InvoiceCategoryUnofficial,
		QuotedTotal:     decimal.Zero,
		CreatedAt:       at,
		UpdatedAt:       at,
		Items:           []model.OrderItem{{ID: 1, OrderID: id, ProductID: 1, RequestedQuantity: 1}},
	}
}

func (s QuoteFacadeStub) Authenticate(ctx context.Context, token string) (*model.Customer, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	return &model.Customer{ID: 1, Name: "customer"}, nil
}

func (s QuoteFacadeStub) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, in)
	}
	return SampleOrder(1, in.CustomerID, model.OrderStatusPendingPricing), nil
}

func (s QuoteFacadeStub) Order(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actor, orderID)
	}
	return SampleOrder(orderID, actor.ID, model.OrderStatusPendingPricing), nil
}

func (s QuoteFacadeStub) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.CustomerOrdersFn != nil {
		return s.CustomerOrdersFn(ctx, customerID)
	}
	return []model.Order{*SampleOrder(1, customerID, model.OrderStatusPendingPricing)}, nil
}

func (s QuoteFacadeStub) PreInvoice(ctx context.Context, actor *model.Customer, orderID int64) (*model.Invoice, billing.Quote, error) {
	if s.PreInvoiceFn != nil {
		return s.PreInvoiceFn(ctx, actor, orderID)
	}
	return &model.Invoice{OrderID: orderID, InvoiceNumber: "PRE-1", InvoiceType: model.InvoiceTypePre}, billing.Quote{}, nil
}

func (s QuoteFacadeStub) ApproveOrder(ctx context.Context, customerID, orderID int64) (*model.Order, *model.Invoice, error) {
	if s.ApproveOrderFn != nil {
		return s.ApproveOrderFn(ctx, customerID, orderID)
	}
	return SampleOrder(orderID, customerID, model.OrderStatusConfirmed),
		&model.Invoice{ID: 1, OrderID: orderID, InvoiceNumber: "INV-1", InvoiceType: model.InvoiceTypeFinal, IsFinalized: true}, nil
}

func (s QuoteFacadeStub) RejectOrder(ctx context.Context, customerID, orderID int64, reason string) (*model.Order, error) {
	if s.RejectOrderFn != nil {
		return s.RejectOrderFn(ctx, customerID, orderID, reason)
	}
	order := SampleOrder(orderID, customerID, model.OrderStatusRejected)
	order.RejectionReason = reason
	return order, nil
}

func (s QuoteFacadeStub) CancelOrder(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, actor, orderID)
	}
	return SampleOrder(orderID, actor.ID, model.OrderStatusCancelled), nil
}

func (s QuoteFacadeStub) OrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.OrdersByStatusFn != nil {
		return s.OrdersByStatusFn(ctx, status)
	}
	return []model.Order{*SampleOrder(1, 1, status)}, nil
}

func (s QuoteFacadeStub) SubmitPricing(ctx context.Context, in usecase.SubmitPricingInput) (*model.Order, error) {
	if s.SubmitPricingFn != nil {
		return s.SubmitPricingFn(ctx, in)
	}
	return SampleOrder(in.OrderID, 1, model.OrderStatusWaitingApproval), nil
}

func (s QuoteFacadeStub) AssignDealer(ctx context.Context, in usecase.AssignDealerInput) (*model.Order, error) {
	if s.AssignDealerFn != nil {
		return s.AssignDealerFn(ctx, in)
	}
	order := SampleOrder(in.OrderID, 1, model.OrderStatusConfirmed)
	order.DealerID = &in.DealerID
	return order, nil
}

func (s QuoteFacadeStub) CompleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.CompleteOrderFn != nil {
		return s.CompleteOrderFn(ctx, orderID)
	}
	return SampleOrder(orderID, 1, model.OrderStatusCompleted), nil
}

func (s QuoteFacadeStub) PayCommissions(ctx context.Context, ids []int64, reference string) (*model.CommissionPayout, error) {
	if s.PayCommissionsFn != nil {
		return s.PayCommissionsFn(ctx, ids, reference)
	}
	return &model.CommissionPayout{TotalAmount: decimal.Zero}, nil
}

func (s QuoteFacadeStub) CreateCustomer(ctx context.Context, in usecase.CreateCustomerInput) (*model.Customer, error) {
	if s.CreateCustomerFn != nil {
		return s.CreateCustomerFn(ctx, in)
	}
	return &model.Customer{ID: 1, Name: in.Name, IsStaff: in.IsStaff, IsDealer: in.IsDealer}, nil
}

func (s QuoteFacadeStub) IssueToken(ctx context.Context, customerID int64) (string, error) {
	if s.IssueTokenFn != nil {
		return s.IssueTokenFn(ctx, customerID)
	}
	return "token", nil
}

func (s QuoteFacadeStub) CreditWallet(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	if s.CreditWalletFn != nil {
		return s.CreditWalletFn(ctx, customerID, amount, reference)
	}
	return &model.Wallet{CustomerID: customerID, Balance: amount}, nil
}

func (s QuoteFacadeStub) DebitWallet(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	if s.DebitWalletFn != nil {
		return s.DebitWalletFn(ctx, customerID, amount, reference)
	}
	return &model.Wallet{CustomerID: customerID, Balance: decimal.Zero}, nil
}

func (s QuoteFacadeStub) UpdateInvoiceInfo(ctx context.Context, customerID int64, info model.InvoiceInfo) (*model.Customer, error) {
	if s.UpdateInvoiceInfoFn != nil {
		return s.UpdateInvoiceInfoFn(ctx, customerID, info)
	}
	return &model.Customer{ID: customerID, InvoiceInfo: info}, nil
}

func (s QuoteFacadeStub) Wallet(ctx context.Context, customerID int64) (*model.Wallet, error) {
	if s.WalletFn != nil {
		return s.WalletFn(ctx, customerID)
	}
	return &model.Wallet{CustomerID: customerID, Balance: decimal.Zero}, nil
}

func (s QuoteFacadeStub) WalletTransactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	if s.WalletTransactionsFn != nil {
		return s.WalletTransactionsFn(ctx, customerID)
	}
	return nil, nil
}

func (s QuoteFacadeStub) DealerCommissions(ctx context.Context, dealer *model.Customer) ([]model.DealerCommission, error) {
	if s.DealerCommissionsFn != nil {
		return s.DealerCommissionsFn(ctx, dealer)
	}
	return nil, nil
}

func (s QuoteFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthCheckFn != nil {
		return s.HealthCheckFn(ctx)
	}
	return nil
}
