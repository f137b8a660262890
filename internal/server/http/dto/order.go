package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line of a new order.
type OrderItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// CreateOrderRequest describes POST /api/orders payload.
type CreateOrderRequest struct {
	InvoiceType  string              `json:"invoice_type"`
	Items        []OrderItemRequest  `json:"items"`
	CustomerInfo *InvoiceInfoPayload `json:"customer_info,omitempty"`
}

// OrderItemResponse describes a line of an order.
type OrderItemResponse struct {
	ID                int64           `json:"id"`
	ProductID         int64           `json:"product_id"`
	RequestedQuantity int             `json:"requested_quantity"`
	CustomerNotes     string          `json:"customer_notes,omitempty"`
	QuotedUnitPrice   decimal.Decimal `json:"quoted_unit_price"`
	FinalQuantity     int             `json:"final_quantity"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	AdminNotes        string          `json:"admin_notes,omitempty"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID                   int64               `json:"id"`
	CustomerID           int64               `json:"customer_id"`
	Status               string              `json:"status"`
	InvoiceType          string              `json:"invoice_type"`
	QuotedTotal          decimal.Decimal     `json:"quoted_total"`
	AdminComment         string              `json:"admin_comment,omitempty"`
	RejectionReason      string              `json:"rejection_reason,omitempty"`
	PricedBy             *int64              `json:"priced_by,omitempty"`
	PricingDate          *time.Time          `json:"pricing_date,omitempty"`
	CustomerResponseDate *time.Time          `json:"customer_response_date,omitempty"`
	CompletionDate       *time.Time          `json:"completion_date,omitempty"`
	CancelledAt          *time.Time          `json:"cancelled_at,omitempty"`
	DealerID             *int64              `json:"dealer_id,omitempty"`
	CommissionRate       *decimal.Decimal    `json:"commission_rate,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
	Items                []OrderItemResponse `json:"items"`
}

// RejectRequest carries the customer's rejection reason.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// ApproveResponse returns the confirmed order with its final invoice.
type ApproveResponse struct {
	Order   OrderResponse   `json:"order"`
	Invoice InvoiceResponse `json:"invoice"`
}
