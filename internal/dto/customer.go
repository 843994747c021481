package dto

import "orderdesk/internal/domain"

type CustomerRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r CustomerRequest) ToDomain() domain.Customer {
	return domain.Customer{
		Name:        r.Name,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}
}

type CustomerResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phoneNumber"`
	OrderIDs    []int64 `json:"orderIds"`
}

func NewCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Address:     c.Address,
		PhoneNumber: c.PhoneNumber,
		OrderIDs:    summaryIDs(c.Orders),
	}
}

func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

func summaryIDs(orders []domain.OrderSummary) []int64 {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}
