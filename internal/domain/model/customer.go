package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
)

// Customer is any party of the system. Staff and dealer capabilities are
// independent flags rather than separate account kinds.
type Customer struct {
	ID                   int64
	Name                 string
	Phone                string
	Email                string
	IsStaff              bool
	IsDealer             bool
	DealerCommissionRate decimal.Decimal
	InvoiceInfo          InvoiceInfo
	CreatedAt            time.Time
}

// CanManageOrders reports whether the customer may price, complete and settle orders.
func (c Customer) CanManageOrders() bool {
	return c.IsStaff
}

// CanReceiveCommission reports whether the customer may be assigned to orders as a dealer.
func (c Customer) CanReceiveCommission() bool {
	return c.IsDealer
}

// InvoiceInfo holds the legal identity fields an official invoice requires.
type InvoiceInfo struct {
	NationalID string
	Address    string
	PostalCode string
}

// Normalize trims surrounding whitespace from every field.
func (i InvoiceInfo) Normalize() InvoiceInfo {
	return InvoiceInfo{
		NationalID: strings.TrimSpace(i.NationalID),
		Address:    strings.TrimSpace(i.Address),
		PostalCode: strings.TrimSpace(i.PostalCode),
	}
}

// Validate returns one FieldError per field that is absent or malformed.
func (i InvoiceInfo) Validate() []domainErrors.FieldError {
	i = i.Normalize()
	var fields []domainErrors.FieldError
	if !digitsBetween(i.NationalID, 8, 12) {
		fields = append(fields, domainErrors.FieldError{Field: "national_id", Message: "must be 8 to 12 digits"})
	}
	if i.Address == "" {
		fields = append(fields, domainErrors.FieldError{Field: "address", Message: "must not be empty"})
	}
	if !digitsBetween(i.PostalCode, 10, 10) {
		fields = append(fields, domainErrors.FieldError{Field: "postal_code", Message: "must be exactly 10 digits"})
	}
	return fields
}

// MissingFields lists the names of fields that fail Validate.
func (i InvoiceInfo) MissingFields() []string {
	problems := i.Validate()
	if len(problems) == 0 {
		return nil
	}
	names := make([]string, 0, len(problems))
	for _, p := range problems {
		names = append(names, p.Field)
	}
	return names
}

// Merge overlays the non-empty fields of other onto i.
func (i InvoiceInfo) Merge(other InvoiceInfo) InvoiceInfo {
	other = other.Normalize()
	if other.NationalID != "" {
		i.NationalID = other.NationalID
	}
	if other.Address != "" {
		i.Address = other.Address
	}
	if other.PostalCode != "" {
		i.PostalCode = other.PostalCode
	}
	return i
}

func digitsBetween(s string, minLen, maxLen int) bool {
	if len(s) < minLen || len(s) > maxLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
