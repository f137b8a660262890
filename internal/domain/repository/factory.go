package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Orders() OrderRepository
	Invoices() InvoiceRepository
	Commissions() CommissionRepository
	Wallets() WalletRepository
}

// UnitOfWork runs fn against repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Factory
	WithinTransaction(ctx context.Context, fn func(Factory) error) error
}
