package handlers

import (
	"github.com/polkiloo/quoteflow/internal/billing"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/server/http/dto"
)

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:                it.ID,
			ProductID:         it.ProductID,
			RequestedQuantity: it.RequestedQuantity,
			CustomerNotes:     it.CustomerNotes,
			QuotedUnitPrice:   it.QuotedUnitPrice,
			FinalQuantity:     it.FinalQuantity,
			TotalPrice:        it.TotalPrice(),
			AdminNotes:        it.AdminNotes,
		})
	}
	return dto.OrderResponse{
		ID:                   o.ID,
		CustomerID:           o.CustomerID,
		Status:               string(o.Status),
		InvoiceType:          string(o.InvoiceCategory),
		QuotedTotal:          o.QuotedTotal,
		AdminComment:         o.AdminComment,
		RejectionReason:      o.RejectionReason,
		PricedBy:             o.PricedBy,
		PricingDate:          o.PricingDate,
		CustomerResponseDate: o.CustomerResponseDate,
		CompletionDate:       o.CompletionDate,
		CancelledAt:          o.CancelledAt,
		DealerID:             o.DealerID,
		CommissionRate:       o.CommissionRate,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
		Items:                items,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toInvoiceResponse(inv model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceType:   string(inv.InvoiceType),
		TotalAmount:   inv.TotalAmount,
		Discount:      inv.Discount,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		PayableAmount: inv.PayableAmount,
		IsFinalized:   inv.IsFinalized,
		IssuedAt:      inv.IssuedAt,
	}
}

func toQuoteLines(q billing.Quote) []dto.QuoteLineResponse {
	lines := make([]dto.QuoteLineResponse, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, dto.QuoteLineResponse{
			ItemID:    l.ItemID,
			ProductID: l.ProductID,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Total:     l.Total,
			TaxRate:   l.TaxRate,
			Tax:       l.Tax,
		})
	}
	return lines
}

func toCustomerResponse(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                   c.ID,
		Name:                 c.Name,
		Phone:                c.Phone,
		Email:                c.Email,
		IsStaff:              c.IsStaff,
		IsDealer:             c.IsDealer,
		DealerCommissionRate: c.DealerCommissionRate,
		InvoiceInfo:          toInvoiceInfoPayload(c.InvoiceInfo),
		CreatedAt:            c.CreatedAt,
	}
}

func toInvoiceInfoPayload(info model.InvoiceInfo) dto.InvoiceInfoPayload {
	return dto.InvoiceInfoPayload{NationalID: info.NationalID, Address: info.Address, PostalCode: info.PostalCode}
}

func fromInvoiceInfoPayload(p dto.InvoiceInfoPayload) model.InvoiceInfo {
	return model.InvoiceInfo{NationalID: p.NationalID, Address: p.Address, PostalCode: p.PostalCode}
}

func toWalletResponse(w model.Wallet) dto.WalletResponse {
	resp := dto.WalletResponse{Balance: w.Balance}
	if !w.UpdatedAt.IsZero() {
		updated := w.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func toCommissionResponse(c model.DealerCommission) dto.CommissionResponse {
	return dto.CommissionResponse{
		ID:               c.ID,
		OrderID:          c.OrderID,
		OrderTotal:       c.OrderTotal,
		CommissionRate:   c.CommissionRate,
		CommissionAmount: c.CommissionAmount,
		IsPaid:           c.IsPaid,
		PaidAt:           c.PaidAt,
		PaymentReference: c.PaymentReference,
		CreatedAt:        c.CreatedAt,
	}
}
