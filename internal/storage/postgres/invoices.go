package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
)

const invoiceColumns = `id, order_id, invoice_number, invoice_type, total_amount, discount, tax_rate,
                   tax_amount, payable_amount, is_finalized, issued_at`

type invoiceRepository struct {
	conn
}

func scanInvoice(row rowScanner, inv *model.Invoice) error {
	return row.Scan(&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &inv.InvoiceType, &inv.TotalAmount, &inv.Discount,
		&inv.TaxRate, &inv.TaxAmount, &inv.PayableAmount, &inv.IsFinalized, &inv.IssuedAt)
}

// Issue inserts the invoice unless the order already has one. A second
// approval therefore returns the stored invoice instead of a duplicate.
func (r *invoiceRepository) Issue(ctx context.Context, inv *model.Invoice) (*model.Invoice, bool, error) {
	query := `INSERT INTO invoices (order_id, invoice_number, invoice_type, total_amount, discount, tax_rate,
                   tax_amount, payable_amount, is_finalized, issued_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                   ON CONFLICT (order_id) DO NOTHING
                   RETURNING ` + invoiceColumns
	var stored model.Invoice
	err := scanInvoice(r.db.QueryRow(ctx, query,
		inv.OrderID, inv.InvoiceNumber, inv.InvoiceType, inv.TotalAmount, inv.Discount, inv.TaxRate,
		inv.TaxAmount, inv.PayableAmount, inv.IsFinalized, inv.IssuedAt,
	), &stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetByOrder(ctx, inv.OrderID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		if isUniqueViolation(err) {
			return nil, false, domainErrors.ErrAlreadyExists
		}
		return nil, false, fmt.Errorf("insert invoice: %w", err)
	}
	return &stored, true, nil
}

func (r *invoiceRepository) GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE order_id=$1`
	var inv model.Invoice
	if err := scanInvoice(r.db.QueryRow(ctx, query, orderID), &inv); err != nil {
		return nil, notFoundOr(err, "select invoice")
	}
	return &inv, nil
}
