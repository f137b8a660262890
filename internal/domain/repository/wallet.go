package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// WalletRepository manages customer wallets and their ledger.
type WalletRepository interface {
	Get(ctx context.Context, customerID int64) (*model.Wallet, error)
	Credit(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error)
	// Debit fails with ErrInsufficientFunds and changes nothing when the
	// balance does not cover amount.
	Debit(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error)
	ListTransactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error)
}
