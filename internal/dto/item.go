package dto

import (
	"github.com/shopspring/decimal"

	"orderdesk/internal/domain"
)

type ItemRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (r ItemRequest) ToDomain() domain.Item {
	return domain.Item{Name: r.Name, Price: r.Price}
}

type ItemResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func NewItemResponse(i domain.Item) ItemResponse {
	return ItemResponse{ID: i.ID, Name: i.Name, Price: i.Price}
}

func NewItemResponses(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, NewItemResponse(i))
	}
	return out
}
