package dto

import "github.com/shopspring/decimal"

// PricingItemRequest sets price, final quantity or notes of one item.
// Omitted fields keep their current value.
type PricingItemRequest struct {
	ItemID     int64            `json:"item_id"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Quantity   *int             `json:"quantity,omitempty"`
	AdminNotes *string          `json:"admin_notes,omitempty"`
}

// SubmitPricingRequest describes POST /api/admin/orders/:id/pricing payload.
type SubmitPricingRequest struct {
	Items        []PricingItemRequest `json:"items"`
	AdminComment string               `json:"admin_comment"`
}

// AssignDealerRequest attaches a dealer, optionally overriding the rate.
type AssignDealerRequest struct {
	DealerID       int64            `json:"dealer_id"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}
