package customer

import (
	"context"

	"orderdesk/internal/domain"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	Search(ctx context.Context, keyword string, dir domain.SortDirection) ([]domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (int64, error)
	Update(ctx context.Context, id int64, c domain.Customer) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
