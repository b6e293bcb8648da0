package order

import "time"

type Order struct {
	ID            string
	OrderNumber   string
	Total         float64
	PaymentMethod *string
	OrderType     *string
	Status        string
	CreatedAt     time.Time

	Items []Item
}

// Item is one order line. Subtotal is price * quantity as charged.
type Item struct {
	ID          string
	OrderID     string
	ProductName string
	Quantity    int
	Price       float64
	Subtotal    float64
}
