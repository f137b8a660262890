package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
)

// OrderStatus describes the negotiation lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPricing  OrderStatus = "pending_pricing"
	OrderStatusWaitingApproval OrderStatus = "waiting_customer_approval"
	OrderStatusConfirmed       OrderStatus = "confirmed"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusCancelled       OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPricing:  {OrderStatusWaitingApproval, OrderStatusCancelled},
	OrderStatusWaitingApproval: {OrderStatusConfirmed, OrderStatusRejected},
	OrderStatusConfirmed:       {OrderStatusCompleted},
}

// CanTransitionTo reports whether next directly follows s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPricing, OrderStatusWaitingApproval, OrderStatusConfirmed,
		OrderStatusCompleted, OrderStatusRejected, OrderStatusCancelled:
		return true
	}
	return false
}

// InvoiceCategory is chosen at order creation and never changes.
type InvoiceCategory string

const (
	InvoiceCategoryOfficial   InvoiceCategory = "official"
	InvoiceCategoryUnofficial InvoiceCategory = "unofficial"
)

// Valid reports whether c is a known category.
func (c InvoiceCategory) Valid() bool {
	return c == InvoiceCategoryOfficial || c == InvoiceCategoryUnofficial
}

// Order is the negotiation aggregate. QuotedTotal is derived from Items and
// is only changed through RecomputeTotal.
type Order struct {
	ID                   int64
	CustomerID           int64
	Status               OrderStatus
	InvoiceCategory      InvoiceCategory
	QuotedTotal          decimal.Decimal
	AdminComment         string
	RejectionReason      string
	PricedBy             *int64
	PricingDate          *time.Time
	CustomerResponseDate *time.Time
	CompletionDate       *time.Time
	CancelledAt          *time.Time
	DealerID             *int64
	CustomCommissionRate *decimal.Decimal
	CommissionRate       *decimal.Decimal
	DealerAssignedAt     *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Items                []OrderItem
}

// PricingUpdate carries optional staff input for one existing item.
type PricingUpdate struct {
	ItemID   int64
	Price    *decimal.Decimal
	Quantity *int
	Notes    *string
}

// NewOrder builds an order in its initial status.
func NewOrder(customerID int64, category InvoiceCategory, items []OrderItem, at time.Time) *Order {
	return &Order{
		CustomerID:      customerID,
		Status:          OrderStatusPendingPricing,
		InvoiceCategory: category,
		QuotedTotal:     decimal.Zero,
		CreatedAt:       at,
		UpdatedAt:       at,
		Items:           items,
	}
}

func (o *Order) require(operation string, allowed ...OrderStatus) error {
	for _, s := range allowed {
		if o.Status == s {
			return nil
		}
	}
	required := make([]string, 0, len(allowed))
	for _, s := range allowed {
		required = append(required, string(s))
	}
	return &domainErrors.StateError{Operation: operation, Current: string(o.Status), Required: required}
}

func (o *Order) moveTo(next OrderStatus, at time.Time) {
	o.Status = next
	o.UpdatedAt = at
}

// SubmitPricing applies staff pricing to the items and advances the order to
// waiting_customer_approval. Validation runs before anything is changed, so a
// failed call leaves the order as it was.
func (o *Order) SubmitPricing(updates []PricingUpdate, comment string, pricedBy int64, at time.Time) error {
	if err := o.require("submit pricing for", OrderStatusPendingPricing); err != nil {
		return err
	}

	positions := make(map[int64]int, len(o.Items))
	for i, item := range o.Items {
		positions[item.ID] = i
	}

	var fields []domainErrors.FieldError
	for i, u := range updates {
		if _, ok := positions[u.ItemID]; !ok {
			return domainErrors.NotFound("order item", u.ItemID)
		}
		if u.Price != nil && u.Price.IsNegative() {
			fields = append(fields, domainErrors.FieldError{Field: itemField(i, "price"), Message: "must not be negative"})
		}
		if u.Quantity != nil && *u.Quantity < 0 {
			fields = append(fields, domainErrors.FieldError{Field: itemField(i, "quantity"), Message: "must not be negative"})
		}
	}
	if len(fields) > 0 {
		return domainErrors.Validation(domainErrors.ErrNegativeValue, fields...)
	}

	items := make([]OrderItem, len(o.Items))
	copy(items, o.Items)
	for _, u := range updates {
		items[positions[u.ItemID]].applyPricing(u)
	}

	if !anyQuoted(items) {
		return &domainErrors.BusinessRuleError{Reason: domainErrors.ErrNoValidPricing}
	}

	o.Items = items
	o.RecomputeTotal()
	o.AdminComment = strings.TrimSpace(comment)
	by := pricedBy
	o.PricedBy = &by
	stamp := at
	o.PricingDate = &stamp
	o.moveTo(OrderStatusWaitingApproval, at)
	return nil
}

// RecomputeTotal sets QuotedTotal to the sum of quoted line totals.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.IsQuoted() {
			total = total.Add(item.TotalPrice())
		}
	}
	o.QuotedTotal = total
}

// Approve confirms the quote.
func (o *Order) Approve(at time.Time) error {
	if err := o.require("approve", OrderStatusWaitingApproval); err != nil {
		return err
	}
	stamp := at
	o.CustomerResponseDate = &stamp
	o.moveTo(OrderStatusConfirmed, at)
	return nil
}

// Reject closes the negotiation. A non-blank reason is required.
func (o *Order) Reject(reason string, at time.Time) error {
	if err := o.require("reject", OrderStatusWaitingApproval); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainErrors.Validation(domainErrors.ErrMissingReason,
			domainErrors.FieldError{Field: "reason", Message: "must not be empty"})
	}
	o.RejectionReason = reason
	stamp := at
	o.CustomerResponseDate = &stamp
	o.moveTo(OrderStatusRejected, at)
	return nil
}

// Cancel withdraws an order that has not been priced yet.
func (o *Order) Cancel(at time.Time) error {
	if err := o.require("cancel", OrderStatusPendingPricing); err != nil {
		return err
	}
	stamp := at
	o.CancelledAt = &stamp
	o.moveTo(OrderStatusCancelled, at)
	return nil
}

// Complete marks a confirmed order as fulfilled.
func (o *Order) Complete(at time.Time) error {
	if err := o.require("complete", OrderStatusConfirmed); err != nil {
		return err
	}
	stamp := at
	o.CompletionDate = &stamp
	o.moveTo(OrderStatusCompleted, at)
	return nil
}

// AssignDealer attaches a dealer and fixes the effective commission rate.
// A later assignment replaces the previous dealer and rate.
func (o *Order) AssignDealer(dealerID int64, custom *decimal.Decimal, effective decimal.Decimal, at time.Time) error {
	if err := o.require("assign dealer to", OrderStatusPendingPricing, OrderStatusWaitingApproval, OrderStatusConfirmed); err != nil {
		return err
	}
	id := dealerID
	o.DealerID = &id
	if custom != nil {
		c := *custom
		o.CustomCommissionRate = &c
	} else {
		o.CustomCommissionRate = nil
	}
	rate := effective
	o.CommissionRate = &rate
	stamp := at
	o.DealerAssignedAt = &stamp
	o.UpdatedAt = at
	return nil
}

// RequireQuoted fails unless staff pricing has already been submitted.
func (o *Order) RequireQuoted(operation string) error {
	return o.require(operation, OrderStatusWaitingApproval, OrderStatusConfirmed, OrderStatusCompleted)
}

// ProductIDs lists the distinct products referenced by the items.
func (o *Order) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Items))
	ids := make([]int64, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// HasDealer reports whether a dealer is attached with a fixed rate.
func (o *Order) HasDealer() bool {
	return o.DealerID != nil && o.CommissionRate != nil
}

// IsOfficial reports whether the order requires a taxed invoice.
func (o *Order) IsOfficial() bool {
	return o.InvoiceCategory == InvoiceCategoryOfficial
}

// Item returns the item with the given ID.
func (o *Order) Item(id int64) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.ID == id {
			return item, true
		}
	}
	return OrderItem{}, false
}

func anyQuoted(items []OrderItem) bool {
	for _, item := range items {
		if item.IsQuoted() {
			return true
		}
	}
	return false
}

func itemField(index int, name string) string {
	return "items[" + strconv.Itoa(index) + "]." + name
}
