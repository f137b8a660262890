package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/billing"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

// AuthFacade resolves actor tokens.
type AuthFacade interface {
	Authenticate(ctx context.Context, token string) (*model.Customer, error)
}

// OrderFacade encapsulates the customer side of the negotiation.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in usecase.CreateOrderInput) (*model.Order, error)
	Order(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error)
	CustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error)
	PreInvoice(ctx context.Context, actor *model.Customer, orderID int64) (*model.Invoice, billing.Quote, error)
	ApproveOrder(ctx context.Context, customerID, orderID int64) (*model.Order, *model.Invoice, error)
	RejectOrder(ctx context.Context, customerID, orderID int64, reason string) (*model.Order, error)
	CancelOrder(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error)
}

// StaffFacade provides the back-office operations.
type StaffFacade interface {
	OrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	SubmitPricing(ctx context.Context, in usecase.SubmitPricingInput) (*model.Order, error)
	AssignDealer(ctx context.Context, in usecase.AssignDealerInput) (*model.Order, error)
	CompleteOrder(ctx context.Context, orderID int64) (*model.Order, error)
	PayCommissions(ctx context.Context, ids []int64, reference string) (*model.CommissionPayout, error)
	CreateCustomer(ctx context.Context, in usecase.CreateCustomerInput) (*model.Customer, error)
	IssueToken(ctx context.Context, customerID int64) (string, error)
	CreditWallet(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error)
	DebitWallet(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error)
}

// AccountFacade covers the actor's own profile, wallet and commissions.
type AccountFacade interface {
	UpdateInvoiceInfo(ctx context.Context, customerID int64, info model.InvoiceInfo) (*model.Customer, error)
	Wallet(ctx context.Context, customerID int64) (*model.Wallet, error)
	WalletTransactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error)
	DealerCommissions(ctx context.Context, dealer *model.Customer) ([]model.DealerCommission, error)
}

// HealthFacade reports readiness of the backing stores.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// QuoteFacade aggregates the full set of operations used across handlers.
type QuoteFacade interface {
	AuthFacade
	OrderFacade
	StaffFacade
	AccountFacade
	HealthFacade
}
