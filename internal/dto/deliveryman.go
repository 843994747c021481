package dto

import "orderdesk/internal/domain"

type DeliverymanRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r DeliverymanRequest) ToDomain() domain.Deliveryman {
	return domain.Deliveryman{Name: r.Name, PhoneNumber: r.PhoneNumber}
}

type DeliverymanResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	PhoneNumber string  `json:"phoneNumber"`
	OrderIDs    []int64 `json:"orderIds"`
}

func NewDeliverymanResponse(d domain.Deliveryman) DeliverymanResponse {
	return DeliverymanResponse{
		ID:          d.ID,
		Name:        d.Name,
		PhoneNumber: d.PhoneNumber,
		OrderIDs:    summaryIDs(d.Orders),
	}
}

func NewDeliverymanResponses(deliverymen []domain.Deliveryman) []DeliverymanResponse {
	out := make([]DeliverymanResponse, 0, len(deliverymen))
	for _, d := range deliverymen {
		out = append(out, NewDeliverymanResponse(d))
	}
	return out
}
