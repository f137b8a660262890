package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/server/http/dto"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

// OrderHandler manages the customer side of an order.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	in := usecase.CreateOrderInput{
		CustomerID:      customer.ID,
		InvoiceCategory: model.InvoiceCategory(req.InvoiceType),
		Items:           make([]usecase.OrderItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		in.Items = append(in.Items, usecase.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity, Notes: item.Notes})
	}
	if req.CustomerInfo != nil {
		info := fromInvoiceInfoPayload(*req.CustomerInfo)
		in.CustomerInfo = &info
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	orders, err := h.facade.CustomerOrders(c.Request.Context(), customer.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), customer, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// PreInvoice handles GET /api/orders/:id/pre-invoice.
func (h *OrderHandler) PreInvoice(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	invoice, quote, err := h.facade.PreInvoice(c.Request.Context(), customer, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PreInvoiceResponse{Invoice: toInvoiceResponse(*invoice), Lines: toQuoteLines(quote)})
}

// Approve handles POST /api/orders/:id/approve.
func (h *OrderHandler) Approve(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, invoice, err := h.facade.ApproveOrder(c.Request.Context(), customer.ID, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApproveResponse{Order: toOrderResponse(*order), Invoice: toInvoiceResponse(*invoice)})
}

// Reject handles POST /api/orders/:id/reject.
func (h *OrderHandler) Reject(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RejectRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.facade.RejectOrder(c.Request.Context(), customer.ID, id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Cancel handles POST /api/orders/:id/cancel and its staff counterpart.
func (h *OrderHandler) Cancel(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), customer, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
