package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	testhelpers "github.com/polkiloo/quoteflow/internal/test"
	"github.com/polkiloo/quoteflow/internal/usecase"
)

func TestCreateCustomer(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	uc := usecase.NewCustomerUseCase(store)

	created, err := uc.Create(context.Background(), usecase.CreateCustomerInput{
		Name:                 "  Dealer Co ",
		Email:                " sales@dealer.test ",
		IsDealer:             true,
		DealerCommissionRate: dec("5"),
		InvoiceInfo:          model.InvoiceInfo{Address: " 1 Main St "},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Dealer Co", created.Name)
	assert.Equal(t, "sales@dealer.test", created.Email)
	assert.Equal(t, "1 Main St", created.InvoiceInfo.Address)

	got, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, got.CanReceiveCommission())
}

func TestCreateCustomerValidation(t *testing.T) {
	uc := usecase.NewCustomerUseCase(testhelpers.NewMemoryStore())

	_, err := uc.Create(context.Background(), usecase.CreateCustomerInput{Name: " ", DealerCommissionRate: dec("150")})
	var validation *domainErrors.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Len(t, validation.Fields, 2)
	assert.Equal(t, "name", validation.Fields[0].Field)
	assert.Equal(t, "dealer_commission_rate", validation.Fields[1].Field)
}

func TestGetCustomerNotFound(t *testing.T) {
	uc := usecase.NewCustomerUseCase(testhelpers.NewMemoryStore())

	_, err := uc.Get(context.Background(), 12)
	var nf *domainErrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "customer", nf.Entity)
	assert.Equal(t, int64(12), nf.ID)
}

func TestUpdateInvoiceInfo(t *testing.T) {
	store := testhelpers.NewMemoryStore()
	nationalID := testhelpers.RandomDigits(10)
	postal := testhelpers.RandomDigits(10)
	owner := store.AddCustomer(model.Customer{Name: "owner", InvoiceInfo: model.InvoiceInfo{NationalID: nationalID}})
	uc := usecase.NewCustomerUseCase(store)

	_, err := uc.UpdateInvoiceInfo(context.Background(), owner.ID, model.InvoiceInfo{Address: "Dock 4"})
	require.ErrorIs(t, err, domainErrors.ErrValidation)
	stored, _ := store.Customer(owner.ID)
	assert.Empty(t, stored.InvoiceInfo.Address, "incomplete info is not saved")

	updated, err := uc.UpdateInvoiceInfo(context.Background(), owner.ID, model.InvoiceInfo{Address: "Dock 4", PostalCode: postal})
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceInfo{NationalID: nationalID, Address: "Dock 4", PostalCode: postal}, updated.InvoiceInfo)
	assert.Empty(t, updated.InvoiceInfo.MissingFields())

	stored, _ = store.Customer(owner.ID)
	assert.Equal(t, updated.InvoiceInfo, stored.InvoiceInfo)
}
