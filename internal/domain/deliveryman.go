package domain

type Deliveryman struct {
	ID          int64
	Name        string
	PhoneNumber string
	Orders      []OrderSummary
}

func (d *Deliveryman) AddOrder(orderID int64) {
	d.Orders = append(d.Orders, OrderSummary{ID: orderID})
}
