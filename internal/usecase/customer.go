package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
)

// CreateCustomerInput describes a customer registered by staff.
type CreateCustomerInput struct {
	Name                 string
	Phone                string
	Email                string
	IsStaff              bool
	IsDealer             bool
	DealerCommissionRate decimal.Decimal
	InvoiceInfo          model.InvoiceInfo
}

// CustomerUseCase manages customer profiles.
type CustomerUseCase struct {
	uow repository.UnitOfWork
}

// NewCustomerUseCase constructs CustomerUseCase.
func NewCustomerUseCase(uow repository.UnitOfWork) *CustomerUseCase {
	return &CustomerUseCase{uow: uow}
}

// Get fetches a customer by identifier.
func (u *CustomerUseCase) Get(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := u.uow.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return customer, nil
}

// Create registers a customer.
func (u *CustomerUseCase) Create(ctx context.Context, in CreateCustomerInput) (*model.Customer, error) {
	var fields []domainErrors.FieldError
	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields = append(fields, domainErrors.FieldError{Field: "name", Message: "must not be empty"})
	}
	if fe := validateRate("dealer_commission_rate", in.DealerCommissionRate); fe != nil {
		fields = append(fields, *fe)
	}
	if len(fields) > 0 {
		return nil, domainErrors.Validation(nil, fields...)
	}

	return u.uow.Customers().Create(ctx, &model.Customer{
		Name:                 name,
		Phone:                strings.TrimSpace(in.Phone),
		Email:                strings.TrimSpace(in.Email),
		IsStaff:              in.IsStaff,
		IsDealer:             in.IsDealer,
		DealerCommissionRate: in.DealerCommissionRate,
		InvoiceInfo:          in.InvoiceInfo.Normalize(),
	})
}

// UpdateInvoiceInfo merges info onto the stored fields and saves the result
// when it is complete.
func (u *CustomerUseCase) UpdateInvoiceInfo(ctx context.Context, id int64, info model.InvoiceInfo) (*model.Customer, error) {
	var customer *model.Customer
	err := u.uow.WithinTransaction(ctx, func(repos repository.Factory) error {
		var err error
		customer, err = repos.Customers().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "customer", id)
		}
		merged := customer.InvoiceInfo.Merge(info)
		if problems := merged.Validate(); len(problems) > 0 {
			return domainErrors.Validation(nil, problems...)
		}
		if err := repos.Customers().UpdateInvoiceInfo(ctx, id, merged); err != nil {
			return err
		}
		customer.InvoiceInfo = merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}
