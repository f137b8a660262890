package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DealerCommission is the amount owed to a dealer for one completed order.
// Amount and rate are fixed at creation; only payment fields change later.
type DealerCommission struct {
	ID               int64
	DealerID         int64
	OrderID          int64
	OrderTotal       decimal.Decimal
	CommissionRate   decimal.Decimal
	CommissionAmount decimal.Decimal
	IsPaid           bool
	PaidAt           *time.Time
	PaymentReference string
	CreatedAt        time.Time
}

// CommissionPayout summarises one settlement batch.
type CommissionPayout struct {
	PaidCount       int
	TotalAmount     decimal.Decimal
	DealersNotified []int64
	Paid            []DealerCommission
}
