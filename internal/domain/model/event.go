package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType names a committed state change that collaborators may act on.
type EventType string

const (
	EventOrderSubmitted EventType = "order_submitted"
	EventPricingReady   EventType = "pricing_ready"
	EventOrderConfirmed EventType = "order_confirmed"
	EventOrderRejected  EventType = "order_rejected"
	EventOrderCompleted EventType = "order_completed"
	EventOrderCancelled EventType = "order_cancelled"
	EventCommissionPaid EventType = "commission_paid"
)

// Event is emitted after the owning transaction commits.
type Event struct {
	ID         uuid.UUID        `json:"id"`
	Type       EventType        `json:"type"`
	OrderID    int64            `json:"order_id,omitempty"`
	CustomerID int64            `json:"customer_id,omitempty"`
	DealerID   int64            `json:"dealer_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	Reference  string           `json:"reference,omitempty"`
	Attempts   int              `json:"attempts"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewEvent stamps a fresh identifier and time on an event.
func NewEvent(eventType EventType, at time.Time) Event {
	return Event{ID: uuid.New(), Type: eventType, OccurredAt: at}
}

// OrderEvent builds an event about a single order.
func OrderEvent(eventType EventType, order *Order, at time.Time) Event {
	e := NewEvent(eventType, at)
	e.OrderID = order.ID
	e.CustomerID = order.CustomerID
	if order.DealerID != nil {
		e.DealerID = *order.DealerID
	}
	if !order.QuotedTotal.IsZero() {
		total := order.QuotedTotal
		e.Amount = &total
	}
	return e
}
