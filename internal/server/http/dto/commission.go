package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionResponse describes a dealer commission row.
type CommissionResponse struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"order_id"`
	OrderTotal       decimal.Decimal `json:"order_total"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	IsPaid           bool            `json:"is_paid"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PayCommissionsRequest describes POST /api/admin/commissions/pay payload.
type PayCommissionsRequest struct {
	CommissionIDs    []int64 `json:"commission_ids"`
	PaymentReference string  `json:"payment_reference"`
}

// PayCommissionsResponse summarises a bulk payout.
type PayCommissionsResponse struct {
	PaidCount       int             `json:"paid_count"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DealersNotified []int64         `json:"dealers_notified"`
}
