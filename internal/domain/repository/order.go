package repository

import (
	"context"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

// OrderRepository describes persistence operations with orders and their items.
type OrderRepository interface {
	// Create stores the order and its items, filling in generated IDs.
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	// Update writes the order row. Items are left untouched.
	Update(ctx context.Context, order *model.Order) error
	UpdateItems(ctx context.Context, items []model.OrderItem) error
}

// InvoiceRepository stores issued invoices, at most one per order.
type InvoiceRepository interface {
	// Issue inserts inv unless the order already has an invoice, in which
	// case the stored one is returned with created=false.
	Issue(ctx context.Context, inv *model.Invoice) (stored *model.Invoice, created bool, err error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error)
}
