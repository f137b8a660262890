package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletResponse represents the current wallet balance.
type WalletResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// WalletOperationRequest describes a staff credit or debit.
type WalletOperationRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// WalletTransactionResponse describes a ledger entry.
type WalletTransactionResponse struct {
	ID        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
