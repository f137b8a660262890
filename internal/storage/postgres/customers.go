package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
)

const customerColumns = `id, name, phone, email, is_staff, is_dealer, dealer_commission_rate,
                   national_id, address, postal_code, created_at`

type customerRepository struct {
	conn
}

func (r *customerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const query = `INSERT INTO customers (name, phone, email, is_staff, is_dealer, dealer_commission_rate,
                   national_id, address, postal_code)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, created_at`
	created := *c
	err := r.db.QueryRow(ctx, query,
		c.Name, c.Phone, c.Email, c.IsStaff, c.IsDealer, c.DealerCommissionRate,
		c.InvoiceInfo.NationalID, c.InvoiceInfo.Address, c.InvoiceInfo.PostalCode,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &created, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	var c model.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.IsStaff, &c.IsDealer, &c.DealerCommissionRate,
		&c.InvoiceInfo.NationalID, &c.InvoiceInfo.Address, &c.InvoiceInfo.PostalCode, &c.CreatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "select customer")
	}
	return &c, nil
}

func (r *customerRepository) UpdateInvoiceInfo(ctx context.Context, id int64, info model.InvoiceInfo) error {
	const query = `UPDATE customers SET national_id=$1, address=$2, postal_code=$3 WHERE id=$4`
	tag, err := r.db.Exec(ctx, query, info.NationalID, info.Address, info.PostalCode, id)
	if err != nil {
		return fmt.Errorf("update invoice info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

type productRepository struct {
	conn
}

// GetByIDs returns the products found among ids. Missing ones are simply
// absent from the map.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	result := make(map[int64]model.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	const query = `SELECT id, name, tax_rate, is_active FROM products WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.TaxRate, &p.IsActive); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
