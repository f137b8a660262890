package repository

import (
	"context"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	UpdateInvoiceInfo(ctx context.Context, id int64, info model.InvoiceInfo) error
}

// ProductRepository gives read access to the catalog.
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error)
}
