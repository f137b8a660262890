package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/quoteflow/internal/server/http/dto"
)

// AccountHandler serves the actor's own profile, wallet and commissions.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// Profile handles GET /api/profile.
func (h *AccountHandler) Profile(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*customer))
}

// UpdateInvoiceInfo handles PUT /api/profile/invoice-info.
func (h *AccountHandler) UpdateInvoiceInfo(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	var req dto.InvoiceInfoPayload
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.facade.UpdateInvoiceInfo(c.Request.Context(), customer.ID, fromInvoiceInfoPayload(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(*updated))
}

// Wallet handles GET /api/wallet.
func (h *AccountHandler) Wallet(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	wallet, err := h.facade.Wallet(c.Request.Context(), customer.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWalletResponse(*wallet))
}

// Transactions handles GET /api/wallet/transactions.
func (h *AccountHandler) Transactions(c *gin.Context) {
	customer, ok := actor(c)
	if !ok {
		return
	}
	txs, err := h.facade.WalletTransactions(c.Request.Context(), customer.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.WalletTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		response = append(response, dto.WalletTransactionResponse{
			ID:        tx.ID,
			Kind:      string(tx.Kind),
			Amount:    tx.Amount,
			Reference: tx.Reference,
			CreatedAt: tx.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// Commissions handles GET /api/dealer/commissions.
func (h *AccountHandler) Commissions(c *gin.Context) {
	dealer, ok := actor(c)
	if !ok {
		return
	}
	commissions, err := h.facade.DealerCommissions(c.Request.Context(), dealer)
	if err != nil {
		writeError(c, err)
		return
	}
	response := make([]dto.CommissionResponse, 0, len(commissions))
	for _, cm := range commissions {
		response = append(response, toCommissionResponse(cm))
	}
	c.JSON(http.StatusOK, response)
}
