package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/billing"
	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	Notes     string
}

// CreateOrderInput carries a customer's order request. CustomerInfo may
// complete or replace the stored invoice fields for official orders.
type CreateOrderInput struct {
	CustomerID      int64
	Items           []OrderItemInput
	InvoiceCategory model.InvoiceCategory
	CustomerInfo    *model.InvoiceInfo
}

// SubmitPricingInput carries a staff pricing submission.
type SubmitPricingInput struct {
	OrderID      int64
	StaffID      int64
	Items        []model.PricingUpdate
	AdminComment string
}

// AssignDealerInput attaches a dealer to an order.
type AssignDealerInput struct {
	OrderID    int64
	DealerID   int64
	CustomRate *decimal.Decimal
}

// OrderUseCase encapsulates the order negotiation lifecycle.
type OrderUseCase struct {
	uow    repository.UnitOfWork
	calc   *billing.Calculator
	events EventPublisher
	log    *slog.Logger
	now    func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(uow repository.UnitOfWork, calc *billing.Calculator, events EventPublisher, log *slog.Logger) *OrderUseCase {
	return &OrderUseCase{uow: uow, calc: calc, events: events, log: log, now: time.Now}
}

// CreateOrder registers a new unpriced order.
func (u *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if !in.InvoiceCategory.Valid() {
		return nil, domainErrors.Validation(nil, domainErrors.FieldError{Field: "invoice_type", Message: "must be official or unofficial"})
	}
	if err := validateOrderItems(in.Items); err != nil {
		return nil, err
	}

	at := u.now()
	var order *model.Order
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		customer, err := repos.Customers().GetByID(ctx, in.CustomerID)
		if err != nil {
			return notFound(err, "customer", in.CustomerID)
		}

		if in.InvoiceCategory == model.InvoiceCategoryOfficial {
			info := customer.InvoiceInfo
			if in.CustomerInfo != nil {
				info = info.Merge(*in.CustomerInfo)
			}
			if problems := info.Validate(); len(problems) > 0 {
				return domainErrors.Validation(domainErrors.ErrIncompleteCustomerInfo, problems...)
			}
			if info != customer.InvoiceInfo {
				if err := repos.Customers().UpdateInvoiceInfo(ctx, customer.ID, info); err != nil {
					return err
				}
			}
		}

		ids := make([]int64, 0, len(in.Items))
		for _, item := range in.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := repos.Products().GetByIDs(ctx, ids)
		if err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(in.Items))
		for _, item := range in.Items {
			product, ok := products[item.ProductID]
			if !ok {
				return domainErrors.NotFound("product", item.ProductID)
			}
			if !product.IsActive {
				return &domainErrors.BusinessRuleError{Reason: fmt.Errorf("product %d: %w", product.ID, domainErrors.ErrProductInactive)}
			}
			items = append(items, model.OrderItem{
				ProductID:         item.ProductID,
				RequestedQuantity: item.Quantity,
				CustomerNotes:     item.Notes,
			})
		}

		order = model.NewOrder(customer.ID, in.InvoiceCategory, items, at)
		return repos.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.log, u.events, model.OrderEvent(model.EventOrderSubmitted, order, at))
	return order, nil
}

// SubmitPricing applies staff pricing to every listed item and advances the
// order in a single transaction.
func (u *OrderUseCase) SubmitPricing(ctx context.Context, in SubmitPricingInput) (*model.Order, error) {
	if err := validatePriceScale(in.Items, u.calc); err != nil {
		return nil, err
	}

	at := u.now()
	var order *model.Order
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		order, err = repos.Orders().GetByID(ctx, in.OrderID)
		if err != nil {
			return notFound(err, "order", in.OrderID)
		}
		if err := order.SubmitPricing(in.Items, in.AdminComment, in.StaffID, at); err != nil {
			return err
		}
		if err := repos.Orders().UpdateItems(ctx, order.Items); err != nil {
			return err
		}
		return repos.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.log, u.events, model.OrderEvent(model.EventPricingReady, order, at))
	return order, nil
}

// ApproveOrder confirms the quote and issues the final invoice in the same
// transaction. A repeated call fails with a StateError and leaves the stored
// invoice as it was.
func (u *OrderUseCase) ApproveOrder(ctx context.Context, customerID, orderID int64) (*model.Order, *model.Invoice, error) {
	at := u.now()
	var (
		order   *model.Order
		invoice *model.Invoice
	)
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		order, err = ownedOrder(ctx, repos, customerID, orderID)
		if err != nil {
			return err
		}
		if err := order.Approve(at); err != nil {
			return err
		}

		if order.IsOfficial() {
			customer, err := repos.Customers().GetByID(ctx, order.CustomerID)
			if err != nil {
				return notFound(err, "customer", order.CustomerID)
			}
			if missing := customer.InvoiceInfo.MissingFields(); len(missing) > 0 {
				return &domainErrors.BusinessRuleError{Reason: domainErrors.ErrIncompleteCustomerInfo, MissingFields: missing}
			}
		}

		quote, err := u.quote(ctx, repos, order)
		if err != nil {
			return err
		}
		invoice, _, err = repos.Invoices().Issue(ctx, u.calc.IssueInvoice(order, quote, at))
		if err != nil {
			return err
		}
		return repos.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, nil, err
	}

	publish(ctx, u.log, u.events, model.OrderEvent(model.EventOrderConfirmed, order, at))
	return order, invoice, nil
}

// RejectOrder closes the negotiation with the customer's reason.
func (u *OrderUseCase) RejectOrder(ctx context.Context, customerID, orderID int64, reason string) (*model.Order, error) {
	at := u.now()
	var order *model.Order
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		order, err = ownedOrder(ctx, repos, customerID, orderID)
		if err != nil {
			return err
		}
		if err := order.Reject(reason, at); err != nil {
			return err
		}
		return repos.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	e := model.OrderEvent(model.EventOrderRejected, order, at)
	e.Reference = order.RejectionReason
	publish(ctx, u.log, u.events, e)
	return order, nil
}

// CancelOrder withdraws an unpriced order. Staff may cancel any order, a
// customer only their own.
func (u *OrderUseCase) CancelOrder(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error) {
	at := u.now()
	var order *model.Order
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		order, err = visibleOrder(ctx, repos, actor, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(at); err != nil {
			return err
		}
		return repos.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.log, u.events, model.OrderEvent(model.EventOrderCancelled, order, at))
	return order, nil
}

// AssignDealer attaches a dealer and fixes the effective commission rate.
func (u *OrderUseCase) AssignDealer(ctx context.Context, in AssignDealerInput) (*model.Order, error) {
	if in.CustomRate != nil {
		if fe := validateRate("custom_commission_rate", *in.CustomRate); fe != nil {
			return nil, domainErrors.Validation(nil, *fe)
		}
	}

	at := u.now()
	var order *model.Order
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		order, err = repos.Orders().GetByID(ctx, in.OrderID)
		if err != nil {
			return notFound(err, "order", in.OrderID)
		}
		dealer, err := repos.Customers().GetByID(ctx, in.DealerID)
		if err != nil {
			return notFound(err, "dealer", in.DealerID)
		}
		if !dealer.CanReceiveCommission() {
			return &domainErrors.BusinessRuleError{Reason: domainErrors.ErrNotDealer}
		}

		rate := billing.EffectiveCommissionRate(in.CustomRate, dealer.DealerCommissionRate)
		if err := order.AssignDealer(dealer.ID, in.CustomRate, rate, at); err != nil {
			return err
		}
		return repos.Orders().Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteOrder marks a confirmed order fulfilled and records the dealer
// commission, when a dealer is attached, in the same transaction.
func (u *OrderUseCase) CompleteOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	at := u.now()
	var order *model.Order
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		order, err = repos.Orders().GetByID(ctx, orderID)
		if err != nil {
			return notFound(err, "order", orderID)
		}
		if err := order.Complete(at); err != nil {
			return err
		}
		if err := repos.Orders().Update(ctx, order); err != nil {
			return err
		}
		if commission, ok := u.calc.NewCommission(order, at); ok {
			if _, _, err := repos.Commissions().Create(ctx, commission); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, u.log, u.events, model.OrderEvent(model.EventOrderCompleted, order, at))
	return order, nil
}

// GetOrder returns an order visible to actor.
func (u *OrderUseCase) GetOrder(ctx context.Context, actor *model.Customer, orderID int64) (*model.Order, error) {
	return visibleOrder(ctx, u.uow, actor, orderID)
}

// ListCustomerOrders returns the customer's orders, newest first.
func (u *OrderUseCase) ListCustomerOrders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.uow.Orders().ListByCustomer(ctx, customerID)
}

// ListByStatus returns the staff work queue for one status.
func (u *OrderUseCase) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.Validation(nil, domainErrors.FieldError{Field: "status", Message: "is not a known order status"})
	}
	return u.uow.Orders().ListByStatus(ctx, status)
}

// PreInvoice computes the provisional invoice of a priced order. Nothing is
// stored.
func (u *OrderUseCase) PreInvoice(ctx context.Context, actor *model.Customer, orderID int64) (*model.Invoice, billing.Quote, error) {
	order, err := visibleOrder(ctx, u.uow, actor, orderID)
	if err != nil {
		return nil, billing.Quote{}, err
	}
	if err := order.RequireQuoted("preview invoice for"); err != nil {
		return nil, billing.Quote{}, err
	}
	quote, err := u.quote(ctx, u.uow, order)
	if err != nil {
		return nil, billing.Quote{}, err
	}
	return u.calc.PreInvoice(order, quote, u.now()), quote, nil
}

func (u *OrderUseCase) quote(ctx context.Context, repos repository.Factory, order *model.Order) (billing.Quote, error) {
	products, err := repos.Products().GetByIDs(ctx, order.ProductIDs())
	if err != nil {
		return billing.Quote{}, err
	}
	return u.calc.Quote(order, products), nil
}

func ownedOrder(ctx context.Context, repos repository.Factory, customerID, orderID int64) (*model.Order, error) {
	order, err := repos.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "order", orderID)
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func visibleOrder(ctx context.Context, repos repository.Factory, actor *model.Customer, orderID int64) (*model.Order, error) {
	if actor.CanManageOrders() {
		order, err := repos.Orders().GetByID(ctx, orderID)
		if err != nil {
			return nil, notFound(err, "order", orderID)
		}
		return order, nil
	}
	return ownedOrder(ctx, repos, actor.ID, orderID)
}
