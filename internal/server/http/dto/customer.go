package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceInfoPayload carries the fields an official invoice needs.
type InvoiceInfoPayload struct {
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
	PostalCode string `json:"postal_code"`
}

// CustomerResponse is the profile view of a customer.
type CustomerResponse struct {
	ID                   int64              `json:"id"`
	Name                 string             `json:"name"`
	Phone                string             `json:"phone,omitempty"`
	Email                string             `json:"email,omitempty"`
	IsStaff              bool               `json:"is_staff"`
	IsDealer             bool               `json:"is_dealer"`
	DealerCommissionRate decimal.Decimal    `json:"dealer_commission_rate"`
	InvoiceInfo          InvoiceInfoPayload `json:"invoice_info"`
	CreatedAt            time.Time          `json:"created_at"`
}

// CreateCustomerRequest describes POST /api/admin/customers payload.
type CreateCustomerRequest struct {
	Name                 string             `json:"name"`
	Phone                string             `json:"phone"`
	Email                string             `json:"email"`
	IsStaff              bool               `json:"is_staff"`
	IsDealer             bool               `json:"is_dealer"`
	DealerCommissionRate decimal.Decimal    `json:"dealer_commission_rate"`
	InvoiceInfo          InvoiceInfoPayload `json:"invoice_info"`
}

// TokenResponse returns an issued actor token.
type TokenResponse struct {
	Token string `json:"token"`
}
