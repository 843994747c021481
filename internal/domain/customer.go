package domain

// OrderSummary is the id-only view of an order attached to its customer or
// deliveryman. It is recomputed from the orders table on every read and is
// never written back.
type OrderSummary struct {
	ID int64
}

type Customer struct {
	ID          int64
	Name        string
	Address     string
	PhoneNumber string
	Orders      []OrderSummary
}

func (c *Customer) AddOrder(orderID int64) {
	c.Orders = append(c.Orders, OrderSummary{ID: orderID})
}
