package repository

import (
	"context"
	"time"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// CommissionRepository manages dealer commission rows.
type CommissionRepository interface {
	Create(ctx context.Context, commission *model.DealerCommission) (*model.DealerCommission, bool, error)
	// MarkPaid settles the unpaid rows among ids and returns only those rows.
	MarkPaid(ctx context.Context, ids []int64, reference string, at time.Time) ([]model.DealerCommission, error)
	ListByDealer(ctx context.Context, dealerID int64) ([]model.DealerCommission, error)
}
