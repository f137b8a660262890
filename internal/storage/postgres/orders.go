package postgres

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
)

const orderColumns = `id, customer_id, status, invoice_category, quoted_total, admin_comment, rejection_reason,
                   priced_by, pricing_date, customer_response_date, completion_date, cancelled_at,
                   dealer_id, custom_commission_rate, commission_rate, dealer_assigned_at, created_at, updated_at`

const itemColumns = `id, order_id, product_id, requested_quantity, customer_notes, quoted_unit_price, final_quantity, admin_notes`

type rowScanner interface {
	Scan(dest ...any) error
}

type orderRepository struct {
	conn
}

func scanOrder(row rowScanner, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.InvoiceCategory, &o.QuotedTotal, &o.AdminComment, &o.RejectionReason,
		&o.PricedBy, &o.PricingDate, &o.CustomerResponseDate, &o.CompletionDate, &o.CancelledAt,
		&o.DealerID, &o.CustomCommissionRate, &o.CommissionRate, &o.DealerAssignedAt, &o.CreatedAt, &o.UpdatedAt,
	)
}

func scanItem(row rowScanner, it *model.OrderItem) error {
	return row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.RequestedQuantity, &it.CustomerNotes,
		&it.QuotedUnitPrice, &it.FinalQuantity, &it.AdminNotes)
}

// Create inserts the order row and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const insertOrder = `INSERT INTO orders (customer_id, status, invoice_category, quoted_total, created_at, updated_at)
                         VALUES ($1, $2, $3, $4, $5, $6)
                         RETURNING id`
	const insertItem = `INSERT INTO order_items (order_id, product_id, requested_quantity, customer_notes)
                        VALUES ($1, $2, $3, $4)
                        RETURNING id`

	return r.inTx(ctx, func(q querier) error {
		var orderID int64
		err := q.QueryRow(ctx, insertOrder,
			order.CustomerID, order.Status, order.InvoiceCategory, order.QuotedTotal, order.CreatedAt, order.UpdatedAt,
		).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			var itemID int64
			if err := q.QueryRow(ctx, insertItem, orderID, item.ProductID, item.RequestedQuantity, item.CustomerNotes).Scan(&itemID); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
			item.ID = itemID
			item.OrderID = orderID
		}
		order.ID = orderID
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var o model.Order
	if err := scanOrder(r.db.QueryRow(ctx, query, id), &o); err != nil {
		return nil, notFoundOr(err, "select order")
	}

	orders := []model.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, customerID)
}

// ListByStatus returns the oldest orders first so staff work the queue in
// arrival order.
func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 ORDER BY created_at, id`
	return r.list(ctx, query, status)
}

func (r *orderRepository) list(ctx context.Context, query string, arg any) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	rows.Close()

	if err := r.attachItems(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// attachItems loads the items of all orders with a single query.
func (r *orderRepository) attachItems(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	query := `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, id`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it model.OrderItem
		if err := scanItem(rows, &it); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return rows.Err()
}

func (r *orderRepository) Update(ctx context.Context, o *model.Order) error {
	const query = `UPDATE orders SET
                       status=$1, quoted_total=$2, admin_comment=$3, rejection_reason=$4,
                       priced_by=$5, pricing_date=$6, customer_response_date=$7, completion_date=$8, cancelled_at=$9,
                       dealer_id=$10, custom_commission_rate=$11, commission_rate=$12, dealer_assigned_at=$13,
                       updated_at=$14
                   WHERE id=$15`
	tag, err := r.db.Exec(ctx, query,
		o.Status, o.QuotedTotal, o.AdminComment, o.RejectionReason,
		o.PricedBy, o.PricingDate, o.CustomerResponseDate, o.CompletionDate, o.CancelledAt,
		o.DealerID, o.CustomCommissionRate, o.CommissionRate, o.DealerAssignedAt,
		o.UpdatedAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// UpdateItems writes the staff-controlled columns of each item.
func (r *orderRepository) UpdateItems(ctx context.Context, items []model.OrderItem) error {
	const query = `UPDATE order_items SET quoted_unit_price=$1, final_quantity=$2, admin_notes=$3 WHERE id=$4`
	return r.inTx(ctx, func(q querier) error {
		for _, it := range items {
			tag, err := q.Exec(ctx, query, it.QuotedUnitPrice, it.FinalQuantity, it.AdminNotes, it.ID)
			if err != nil {
				return fmt.Errorf("update order item: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrNotFound
			}
		}
		return nil
	})
}
