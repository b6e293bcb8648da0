package order

import (
	"context"
	"time"
)

// OrderRepository defines data access for orders and their line items.
type OrderRepository interface {
	// ListRange retrieves orders created inside [start, end of the end day]
	// with their items populated, newest first. Orders with no items are
	// returned with an empty slice.
	ListRange(ctx context.Context, start, end time.Time) ([]Order, error)
}
