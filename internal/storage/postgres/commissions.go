package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

const commissionColumns = `id, dealer_id, order_id, order_total, commission_rate, commission_amount,
                   is_paid, paid_at, payment_reference, created_at`

type commissionRepository struct {
	conn
}

func scanCommission(row rowScanner, c *model.DealerCommission) error {
	return row.Scan(&c.ID, &c.DealerID, &c.OrderID, &c.OrderTotal, &c.CommissionRate, &c.CommissionAmount,
		&c.IsPaid, &c.PaidAt, &c.PaymentReference, &c.CreatedAt)
}

// Create inserts the commission row for an order, or returns the existing
// one with created=false.
func (r *commissionRepository) Create(ctx context.Context, c *model.DealerCommission) (*model.DealerCommission, bool, error) {
	query := `INSERT INTO dealer_commissions (dealer_id, order_id, order_total, commission_rate, commission_amount, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (order_id) DO NOTHING
                   RETURNING ` + commissionColumns
	var stored model.DealerCommission
	err := scanCommission(r.db.QueryRow(ctx, query,
		c.DealerID, c.OrderID, c.OrderTotal, c.CommissionRate, c.CommissionAmount, c.CreatedAt,
	), &stored)
	if err == nil {
		return &stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert commission: %w", err)
	}

	lookup := `SELECT ` + commissionColumns + ` FROM dealer_commissions WHERE order_id=$1`
	if err := scanCommission(r.db.QueryRow(ctx, lookup, c.OrderID), &stored); err != nil {
		return nil, false, notFoundOr(err, "select commission")
	}
	return &stored, false, nil
}

// MarkPaid flips the unpaid rows among ids in a single statement. Rows that
// are already paid or do not exist are left out of the result.
func (r *commissionRepository) MarkPaid(ctx context.Context, ids []int64, reference string, at time.Time) ([]model.DealerCommission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `UPDATE dealer_commissions SET is_paid=TRUE, paid_at=$2, payment_reference=$3
                   WHERE id = ANY($1) AND is_paid=FALSE
                   RETURNING ` + commissionColumns
	return r.collect(ctx, query, ids, at, reference)
}

func (r *commissionRepository) ListByDealer(ctx context.Context, dealerID int64) ([]model.DealerCommission, error) {
	query := `SELECT ` + commissionColumns + ` FROM dealer_commissions WHERE dealer_id=$1 ORDER BY created_at DESC, id DESC`
	return r.collect(ctx, query, dealerID)
}

func (r *commissionRepository) collect(ctx context.Context, query string, args ...any) ([]model.DealerCommission, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query commissions: %w", err)
	}
	defer rows.Close()

	var result []model.DealerCommission
	for rows.Next() {
		var c model.DealerCommission
		if err := scanCommission(rows, &c); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
