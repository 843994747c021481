package item

import (
	"context"

	"orderdesk/internal/domain"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	FindByName(ctx context.Context, name string) (*domain.Item, error)
	Search(ctx context.Context, keyword string, dir domain.SortDirection) ([]domain.Item, error)
	Create(ctx context.Context, i domain.Item) (int64, error)
	Update(ctx context.Context, id int64, i domain.Item) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
