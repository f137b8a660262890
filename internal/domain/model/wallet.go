package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet stores a customer's non-negative balance.
type Wallet struct {
	CustomerID int64
	Balance    decimal.Decimal
	UpdatedAt  time.Time
}

// WalletTransactionKind is the direction of a wallet movement.
type WalletTransactionKind string

const (
	WalletCredit WalletTransactionKind = "credit"
	WalletDebit  WalletTransactionKind = "debit"
)

// WalletTransaction is one ledger entry.
type WalletTransaction struct {
	ID         int64
	CustomerID int64
	Kind       WalletTransactionKind
	Amount     decimal.Decimal
	Reference  string
	CreatedAt  time.Time
}
