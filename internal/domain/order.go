package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the aggregate root spanning orders, order_item and the referenced
// customer, deliveryman and item rows. Customer is nil when the stored
// customer_id no longer resolves; Deliveryman is nil when unassigned.
type Order struct {
	ID            int64
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
	CustomerID    int64
	DeliverymanID *int64
	Customer      *Customer
	Deliveryman   *Deliveryman
	Items         []Item
}

// OrderDraft carries the writable fields of an order for create and update.
// ItemIDs may repeat the same id; each occurrence becomes one link row.
type OrderDraft struct {
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
	CustomerID    int64
	DeliverymanID *int64
	ItemIDs       []int64
}

// SumPrices returns the total of the given items.
func SumPrices(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}

// DateOnly drops the clock part of t, keeping its calendar day, at UTC
// midnight. Orders store a date without time of day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
