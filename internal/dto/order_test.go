package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

func TestOrderRequest_ToDraft(t *testing.T) {
	var req OrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"totalPrice": 19.98,
		"date": "2024-10-01",
		"customerId": 3,
		"deliverymanId": 7,
		"itemIds": [1, 1]
	}`), &req))

	draft, err := req.ToDraft(time.Now())
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("19.98").Equal(draft.TotalPrice))
	assert.True(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC).Equal(draft.CreatedAt))
	assert.Equal(t, int64(3), draft.CustomerID)
	require.NotNil(t, draft.DeliverymanID)
	assert.Equal(t, int64(7), *draft.DeliverymanID)
	assert.Equal(t, []int64{1, 1}, draft.ItemIDs)
}

func TestOrderRequest_ToDraft_DefaultsToToday(t *testing.T) {
	now := time.Date(2024, 12, 24, 18, 45, 0, 0, time.UTC)

	draft, err := OrderRequest{CustomerID: 1}.ToDraft(now)

	require.NoError(t, err)
	assert.True(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC).Equal(draft.CreatedAt))
	assert.Nil(t, draft.DeliverymanID)
}

func TestOrderRequest_ToDraft_BadDate(t *testing.T) {
	_, err := OrderRequest{CustomerID: 1, Date: "01/10/2024"}.ToDraft(time.Now())

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "date", ve.Details[0].Field)
}

func TestNewOrderResponse(t *testing.T) {
	o := domain.Order{
		ID:         9,
		TotalPrice: decimal.RequireFromString("9.99"),
		CreatedAt:  time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		CustomerID: 3,
		Customer: &domain.Customer{
			ID:     3,
			Name:   "Ann",
			Orders: []domain.OrderSummary{{ID: 9}},
		},
		Items: []domain.Item{{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")}},
	}

	resp := NewOrderResponse(o)

	assert.Equal(t, "2024-10-01", resp.Date)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, []int64{9}, resp.Customer.OrderIDs)
	assert.Nil(t, resp.Deliveryman)
	assert.Len(t, resp.Items, 1)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"totalPrice":"9.99"`)
	assert.Contains(t, string(body), `"deliveryman":null`)
}

func TestNewCustomerResponse_NoOrders(t *testing.T) {
	resp := NewCustomerResponse(domain.Customer{ID: 1, Name: "Bob"})

	assert.NotNil(t, resp.OrderIDs)
	assert.Empty(t, resp.OrderIDs)
}
