package usecase

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
)

// CommissionUseCase settles and lists dealer commissions.
type CommissionUseCase struct {
	uow    repository.UnitOfWork
	events EventPublisher
	log    *slog.Logger
	now    func() time.Time
}

// NewCommissionUseCase constructs CommissionUseCase.
func NewCommissionUseCase(uow repository.UnitOfWork, events EventPublisher, log *slog.Logger) *CommissionUseCase {
	return &CommissionUseCase{uow: uow, events: events, log: log, now: time.Now}
}

// PayCommissions marks the unpaid commissions among ids as paid in one
// transaction. Already paid rows are skipped and left untouched, so retrying
// a batch is safe. One event is published per dealer paid in this call.
func (u *CommissionUseCase) PayCommissions(ctx context.Context, ids []int64, reference string) (*model.CommissionPayout, error) {
	if err := requireText("payment_reference", reference); err != nil {
		return nil, err
	}

	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	at := u.now()
	var paid []model.DealerCommission
	if len(unique) > 0 {
		err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
			var err error
			paid, err = repos.Commissions().MarkPaid(ctx, unique, reference, at)
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	payout := &model.CommissionPayout{TotalAmount: decimal.Zero, Paid: paid, PaidCount: len(paid)}
	perDealer := make(map[int64]decimal.Decimal)
	for _, c := range paid {
		payout.TotalAmount = payout.TotalAmount.Add(c.CommissionAmount)
		if _, ok := perDealer[c.DealerID]; !ok {
			payout.DealersNotified = append(payout.DealersNotified, c.DealerID)
		}
		perDealer[c.DealerID] = perDealer[c.DealerID].Add(c.CommissionAmount)
	}
	slices.Sort(payout.DealersNotified)

	events := make([]model.Event, 0, len(payout.DealersNotified))
	for _, dealerID := range payout.DealersNotified {
		e := model.NewEvent(model.EventCommissionPaid, at)
		e.DealerID = dealerID
		e.CustomerID = dealerID
		amount := perDealer[dealerID]
		e.Amount = &amount
		e.Reference = reference
		events = append(events, e)
	}
	publish(ctx, u.log, u.events, events...)

	return payout, nil
}

// DealerCommissions lists the commissions owed to a dealer.
func (u *CommissionUseCase) DealerCommissions(ctx context.Context, dealer *model.Customer) ([]model.DealerCommission, error) {
	if !dealer.CanReceiveCommission() {
		return nil, domainErrors.ErrForbidden
	}
	return u.uow.Commissions().ListByDealer(ctx, dealer.ID)
}
