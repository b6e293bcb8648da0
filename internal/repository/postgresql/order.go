package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/iza-pos/pos-backend-go/internal/domain/order"
	"github.com/iza-pos/pos-backend-go/internal/pkg/database"
)

type orderRepository struct {
	db *database.DB
}

// ListRange implements order.OrderRepository. Orders are fetched with their
// line items in a second query keyed by the returned ids; orders without
// items stay in the result with Items empty.
func (r *orderRepository) ListRange(ctx context.Context, start, end time.Time) ([]order.Order, error) {
	q := GetQuerier(ctx, r.db)

	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	query := `
		SELECT id, order_number, total, payment_method, order_type, status, created_at
		FROM orders
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, start, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	var ids []string
	for rows.Next() {
		var o order.Order
		err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Total, &o.PaymentMethod,
			&o.OrderType, &o.Status, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Items = []order.Item{}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return orders, nil
	}

	itemQuery := `
		SELECT id, order_id, product_name, quantity, price, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
	`

	itemRows, err := q.Query(ctx, itemQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	itemsByOrder := make(map[string][]order.Item, len(ids))
	for itemRows.Next() {
		var it order.Item
		err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductName, &it.Quantity, &it.Price, &it.Subtotal)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	for i := range orders {
		if items, ok := itemsByOrder[orders[i].ID]; ok {
			orders[i].Items = items
		}
	}

	return orders, nil
}

func NewOrderRepository(db *database.DB) order.OrderRepository {
	return &orderRepository{db: db}
}
