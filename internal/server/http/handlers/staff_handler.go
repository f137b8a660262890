package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/server/http/dto"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

// StaffHandler serves the /api/admin routes.
type StaffHandler struct {
	facade StaffFacade
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(facade StaffFacade) *StaffHandler {
	return &StaffHandler{facade: facade}
}

// Queue handles GET /api/admin/orders?status=. The status defaults to
// pending_pricing.
func (h *StaffHandler) Queue(c *gin.Context) {
	status := model.OrderStatus(c.DefaultQuery("status", string(model.OrderStatusPendingPricing)))
	if !status.Valid() {
		writeError(c, domainErrors.Validation(nil, domainErrors.FieldError{Field: "status", Message: "unknown order status"}))
		return
	}
	orders, err := h.facade.OrdersByStatus(c.Request.Context(), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// SubmitPricing handles POST /api/admin/orders/:id/pricing.
func (h *StaffHandler) SubmitPricing(c *gin.Context) {
	staff, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitPricingRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := make([]model.PricingUpdate, 0, len(req.Items))
	for _, item := range req.Items {
		updates = append(updates, model.PricingUpdate{
			ItemID:   item.ItemID,
			Price:    item.Price,
			Quantity: item.Quantity,
			Notes:    item.AdminNotes,
		})
	}
	order, err := h.facade.SubmitPricing(c.Request.Context(), usecase.SubmitPricingInput{
		OrderID:      id,
		StaffID:      staff.ID,
		Items:        updates,
		AdminComment: req.AdminComment,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// AssignDealer handles POST /api/admin/orders/:id/dealer.
func (h *StaffHandler) AssignDealer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignDealerRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.AssignDealer(c.Request.Context(), usecase.AssignDealerInput{
		OrderID:    id,
		DealerID:   req.DealerID,
		CustomRate: req.CommissionRate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Complete handles POST /api/admin/orders/:id/complete.
func (h *StaffHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CompleteOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// PayCommissions handles POST /api/admin/commissions/pay.
func (h *StaffHandler) PayCommissions(c *gin.Context) {
	var req dto.PayCommissionsRequest
	if !bindJSON(c, &req) {
		return
	}
	payout, err := h.facade.PayCommissions(c.Request.Context(), req.CommissionIDs, req.PaymentReference)
	if err != nil {
		writeError(c, err)
		return
	}
	dealers := payout.DealersNotified
	if dealers == nil {
		dealers = []int64{}
	}
	c.JSON(http.StatusOK, dto.PayCommissionsResponse{
		PaidCount:       payout.PaidCount,
		TotalAmount:     payout.TotalAmount,
		DealersNotified: dealers,
	})
}

// CreateCustomer handles POST /api/admin/customers.
func (h *StaffHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	customer, err := h.facade.CreateCustomer(c.Request.Context(), usecase.CreateCustomerInput{
		Name:                 req.Name,
		Phone:                req.Phone,
		Email:                req.Email,
		IsStaff:              req.IsStaff,
		IsDealer:             req.IsDealer,
		DealerCommissionRate: req.DealerCommissionRate,
		InvoiceInfo:          fromInvoiceInfoPayload(req.InvoiceInfo),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResponse(*customer))
}

// IssueToken handles POST /api/admin/customers/:id/token.
func (h *StaffHandler) IssueToken(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	token, err := h.facade.IssueToken(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// CreditWallet handles POST /api/admin/customers/:id/wallet/credit.
func (h *StaffHandler) CreditWallet(c *gin.Context) {
	h.walletOperation(c, h.facade.CreditWallet)
}

// DebitWallet handles POST /api/admin/customers/:id/wallet/debit.
func (h *StaffHandler) DebitWallet(c *gin.Context) {
	h.walletOperation(c, h.facade.DebitWallet)
}

type walletFn = func(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error)

func (h *StaffHandler) walletOperation(c *gin.Context, op walletFn) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.WalletOperationRequest
	if !bindJSON(c, &req) {
		return
	}
	wallet, err := op(c.Request.Context(), id, req.Amount, req.Reference)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWalletResponse(*wallet))
}
