package model

import "github.com/shopspring/decimal"

// OrderItem is one requested product line. RequestedQuantity is fixed at
// creation; price, final quantity and admin notes come from staff.
type OrderItem struct {
	ID                int64
	OrderID           int64
	ProductID         int64
	RequestedQuantity int
	CustomerNotes     string
	QuotedUnitPrice   decimal.Decimal
	FinalQuantity     int
	AdminNotes        string
}

// TotalPrice is the quoted unit price times the final quantity.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.QuotedUnitPrice.Mul(decimal.NewFromInt(int64(i.FinalQuantity)))
}

// IsPriced reports whether staff set a positive unit price.
func (i OrderItem) IsPriced() bool {
	return i.QuotedUnitPrice.IsPositive()
}

// IsQuoted reports whether the line counts toward the order total.
func (i OrderItem) IsQuoted() bool {
	return i.IsPriced() && i.FinalQuantity > 0
}

func (i *OrderItem) applyPricing(u PricingUpdate) {
	if u.Price != nil {
		i.QuotedUnitPrice = *u.Price
		if u.Quantity == nil && i.FinalQuantity == 0 {
			i.FinalQuantity = i.RequestedQuantity
		}
	}
	if u.Quantity != nil {
		i.FinalQuantity = *u.Quantity
	}
	if u.Notes != nil {
		i.AdminNotes = *u.Notes
	}
}
