package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	createdAt := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	deliverymanID := int64(7)

	order := Order{
		ID:            1,
		TotalPrice:    decimal.RequireFromString("19.98"),
		CreatedAt:     createdAt,
		CustomerID:    3,
		DeliverymanID: &deliverymanID,
		Customer:      &Customer{ID: 3, Name: "Ann"},
		Deliveryman:   &Deliveryman{ID: 7, Name: "Bob"},
		Items: []Item{
			{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")},
			{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")},
		},
	}

	assert.Equal(t, int64(1), order.ID)
	assert.True(t, decimal.RequireFromString("19.98").Equal(order.TotalPrice))
	assert.Equal(t, createdAt, order.CreatedAt)
	assert.Equal(t, "Ann", order.Customer.Name)
	assert.Equal(t, int64(7), *order.DeliverymanID)
	assert.Len(t, order.Items, 2)
}

func TestOrder_WithoutDeliveryman(t *testing.T) {
	order := Order{ID: 2, CustomerID: 3}

	assert.Nil(t, order.DeliverymanID)
	assert.Nil(t, order.Deliveryman)
	assert.Empty(t, order.Items)
}

func TestSumPrices(t *testing.T) {
	items := []Item{
		{Price: decimal.RequireFromString("9.99")},
		{Price: decimal.RequireFromString("0.01")},
		{Price: decimal.RequireFromString("5.50")},
	}

	assert.True(t, decimal.RequireFromString("15.50").Equal(SumPrices(items)))
	assert.True(t, decimal.Zero.Equal(SumPrices(nil)))
}
