package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
)

// WalletUseCase manages customer wallet balances.
type WalletUseCase struct {
	uow repository.UnitOfWork
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(uow repository.UnitOfWork) *WalletUseCase {
	return &WalletUseCase{uow: uow}
}

// Balance returns the customer's wallet. A customer without movements has a
// zero balance.
func (u *WalletUseCase) Balance(ctx context.Context, customerID int64) (*model.Wallet, error) {
	return u.uow.Wallets().Get(ctx, customerID)
}

// AddFunds credits the wallet.
func (u *WalletUseCase) AddFunds(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	var wallet *model.Wallet
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		if _, err := repos.Customers().GetByID(ctx, customerID); err != nil {
			return notFound(err, "customer", customerID)
		}
		var err error
		wallet, err = repos.Wallets().Credit(ctx, customerID, amount, strings.TrimSpace(reference))
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// DeductFunds debits the wallet only when the balance covers amount.
func (u *WalletUseCase) DeductFunds(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	var wallet *model.Wallet
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		wallet, err = repos.Wallets().Debit(ctx, customerID, amount, strings.TrimSpace(reference))
		return err
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInsufficientFunds) {
			return nil, &domainErrors.BusinessRuleError{Reason: domainErrors.ErrInsufficientFunds}
		}
		return nil, err
	}
	return wallet, nil
}

// Transactions returns the wallet ledger, newest first.
func (u *WalletUseCase) Transactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	return u.uow.Wallets().ListTransactions(ctx, customerID)
}
