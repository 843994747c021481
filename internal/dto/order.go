package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

const DateLayout = "2006-01-02"

type OrderRequest struct {
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Date          string          `json:"date"`
	CustomerID    int64           `json:"customerId"`
	DeliverymanID *int64          `json:"deliverymanId"`
	ItemIDs       []int64         `json:"itemIds"`
}

// ToDraft converts the request into a draft. An empty date means the day of
// now.
func (r OrderRequest) ToDraft(now time.Time) (domain.OrderDraft, error) {
	createdAt := domain.DateOnly(now)
	if r.Date != "" {
		parsed, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			return domain.OrderDraft{}, apperrors.NewValidationError("invalid date", apperrors.ValidationDetail{
				Field:   "date",
				Message: "date must use the YYYY-MM-DD format",
			})
		}
		createdAt = parsed
	}

	return domain.OrderDraft{
		TotalPrice:    r.TotalPrice,
		CreatedAt:     createdAt,
		CustomerID:    r.CustomerID,
		DeliverymanID: r.DeliverymanID,
		ItemIDs:       r.ItemIDs,
	}, nil
}

type OrderResponse struct {
	ID            int64                `json:"id"`
	TotalPrice    decimal.Decimal      `json:"totalPrice"`
	Date          string               `json:"date"`
	CustomerID    int64                `json:"customerId"`
	DeliverymanID *int64               `json:"deliverymanId"`
	Customer      *CustomerResponse    `json:"customer"`
	Deliveryman   *DeliverymanResponse `json:"deliveryman"`
	Items         []ItemResponse       `json:"items"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		TotalPrice:    o.TotalPrice,
		Date:          o.CreatedAt.Format(DateLayout),
		CustomerID:    o.CustomerID,
		DeliverymanID: o.DeliverymanID,
		Items:         NewItemResponses(o.Items),
	}
	if o.Customer != nil {
		c := NewCustomerResponse(*o.Customer)
		resp.Customer = &c
	}
	if o.Deliveryman != nil {
		d := NewDeliverymanResponse(*o.Deliveryman)
		resp.Deliveryman = &d
	}
	return resp
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
