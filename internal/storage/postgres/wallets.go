package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
)

type walletRepository struct {
	conn
}

// Get returns the wallet, or an empty one when the customer never had funds.
func (r *walletRepository) Get(ctx context.Context, customerID int64) (*model.Wallet, error) {
	const query = `SELECT customer_id, balance, updated_at FROM wallets WHERE customer_id=$1`
	var w model.Wallet
	err := r.db.QueryRow(ctx, query, customerID).Scan(&w.CustomerID, &w.Balance, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.Wallet{CustomerID: customerID, Balance: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("select wallet: %w", err)
	}
	return &w, nil
}

func (r *walletRepository) Credit(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	const upsert = `INSERT INTO wallets (customer_id, balance, updated_at)
                    VALUES ($1, $2, $3)
                    ON CONFLICT (customer_id) DO UPDATE
                    SET balance = wallets.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
                    RETURNING balance`

	var wallet *model.Wallet
	err := r.inTx(ctx, func(q querier) error {
		now := time.Now()
		var balance decimal.Decimal
		if err := q.QueryRow(ctx, upsert, customerID, amount, now).Scan(&balance); err != nil {
			return fmt.Errorf("credit wallet: %w", err)
		}
		if err := insertWalletTransaction(ctx, q, customerID, model.WalletCredit, amount, reference, now); err != nil {
			return err
		}
		wallet = &model.Wallet{CustomerID: customerID, Balance: balance, UpdatedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// Debit locks the wallet row, checks the balance and only then writes.
func (r *walletRepository) Debit(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	const lock = `SELECT balance FROM wallets WHERE customer_id=$1 FOR UPDATE`
	const update = `UPDATE wallets SET balance=$2, updated_at=$3 WHERE customer_id=$1`

	var wallet *model.Wallet
	err := r.inTx(ctx, func(q querier) error {
		var current decimal.Decimal
		err := q.QueryRow(ctx, lock, customerID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				current = decimal.Zero
			} else {
				return fmt.Errorf("lock wallet: %w", err)
			}
		}
		if current.LessThan(amount) {
			return domainErrors.ErrInsufficientFunds
		}

		now := time.Now()
		balance := current.Sub(amount)
		if _, err := q.Exec(ctx, update, customerID, balance, now); err != nil {
			return fmt.Errorf("debit wallet: %w", err)
		}
		if err := insertWalletTransaction(ctx, q, customerID, model.WalletDebit, amount, reference, now); err != nil {
			return err
		}
		wallet = &model.Wallet{CustomerID: customerID, Balance: balance, UpdatedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func insertWalletTransaction(ctx context.Context, q querier, customerID int64, kind model.WalletTransactionKind, amount decimal.Decimal, reference string, at time.Time) error {
	const query = `INSERT INTO wallet_transactions (customer_id, kind, amount, reference, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := q.Exec(ctx, query, customerID, kind, amount, reference, at); err != nil {
		return fmt.Errorf("insert wallet transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	const query = `SELECT id, customer_id, kind, amount, reference, created_at
                   FROM wallet_transactions WHERE customer_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("select wallet transactions: %w", err)
	}
	defer rows.Close()

	var result []model.WalletTransaction
	for rows.Next() {
		var t model.WalletTransaction
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Kind, &t.Amount, &t.Reference, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet transaction: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
