package app

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"

	"github.com/polkiloo/quoteflow/internal/billing"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// QuoteFacade exposes the use cases to the HTTP layer under one surface.
type QuoteFacade struct {
	auth        *usecase.AuthUseCase
	customers   *usecase.CustomerUseCase
	orders      *usecase.OrderUseCase
	commissions *usecase.CommissionUseCase
	wallets     *usecase.WalletUseCase
	health      HealthChecker
}

type facadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Customers   *usecase.CustomerUseCase
	Orders      *usecase.OrderUseCase
	Commissions *usecase.CommissionUseCase
	Wallets     *usecase.WalletUseCase
	Health      HealthChecker
}

// NewQuoteFacade builds the facade from its use cases.
func NewQuoteFacade(p facadeParams) *QuoteFacade {
	return &QuoteFacade{
		auth:        p.Auth,
		customers:   p.Customers,
		orders:      p.Orders,
		commissions: p.Commissions,
		wallets:     p.Wallets,
		health:      p.Health,
	}
}

func (f *QuoteFacade) Authenticate(ctx context.Context, token string) (*model.Customer, error) {
	return f.auth.Authenticate(ctx, token)
}

func (f *QuoteFacade) IssueToken(ctx context.Context, customerID int64) (string, error) {
	return f.auth.IssueToken(ctx, customerID)
}

func (f *QuoteFacade) CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error) {
	return f.orders.CreateOrder(ctx, in)
}

func (f *QuoteFacade) Order(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error) {
	return f.orders.GetOrder(ctx, actor, orderID)
}

func (f *QuoteFacade) CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListCustomerOrders(ctx, customerID)
}

func (f *QuoteFacade) PreInvoice(ctx context.Context, actor *model.Customer, orderID int64) (*model.Invoice, billing.Quote, error) {
	return f.orders.PreInvoice(ctx, actor, orderID)
}

func (f *QuoteFacade) ApproveOrder(ctx context.Context, customerID, orderID int64) (*model.Order, *model.Invoice, error) {
	return f.orders.ApproveOrder(ctx, customerID, orderID)
}

func (f *QuoteFacade) RejectOrder(ctx context.Context, customerID, orderID int64, reason string) (*model.Order, error) {
	return f.orders.RejectOrder(ctx, customerID, orderID, reason)
}

func (f *QuoteFacade) CancelOrder(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error) {
	return f.orders.CancelOrder(ctx, actor, orderID)
}

func (f *QuoteFacade) OrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListByStatus(ctx, status)
}

func (f *QuoteFacade) SubmitPricing(ctx context.Context, in usecase.SubmitPricingInput) (*model.Order, error) {
	return f.orders.SubmitPricing(ctx, in)
}

func (f *QuoteFacade) AssignDealer(ctx context.Context, in usecase.AssignDealerInput) (*model.Order, error) {
	return f.orders.AssignDealer(ctx, in)
}

func (f *QuoteFacade) CompleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.CompleteOrder(ctx, orderID)
}

func (f *QuoteFacade) PayCommissions(ctx context.Context, ids []int64, reference string) (*model.CommissionPayout, error) {
	return f.commissions.PayCommissions(ctx, ids, reference)
}

func (f *QuoteFacade) DealerCommissions(ctx context.Context, dealer *model.Customer) ([]model.DealerCommission, error) {
	return f.commissions.DealerCommissions(ctx, dealer)
}

func (f *QuoteFacade) CreateCustomer(ctx context.Context, in usecase.CreateCustomerInput) (*model.Customer, error) {
	return f.customers.Create(ctx, in)
}

func (f *QuoteFacade) UpdateInvoiceInfo(ctx context.Context, customerID int64, info model.InvoiceInfo) (*model.Customer, error) {
	return f.customers.UpdateInvoiceInfo(ctx, customerID, info)
}

func (f *QuoteFacade) Wallet(ctx context.Context, customerID int64) (*model.Wallet, error) {
	return f.wallets.Balance(ctx, customerID)
}

func (f *QuoteFacade) WalletTransactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	return f.wallets.Transactions(ctx, customerID)
}

func (f *QuoteFacade) CreditWallet(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	return f.wallets.AddFunds(ctx, customerID, amount, reference)
}

func (f *QuoteFacade) DebitWallet(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	return f.wallets.DeductFunds(ctx, customerID, amount, reference)
}

func (f *QuoteFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
