package deliveryman

import (
	"context"

	"orderdesk/internal/domain"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Deliveryman, error)
	FindByID(ctx context.Context, id int64) (*domain.Deliveryman, error)
	Search(ctx context.Context, keyword string, dir domain.SortDirection) ([]domain.Deliveryman, error)
	Create(ctx context.Context, d domain.Deliveryman) (int64, error)
	Update(ctx context.Context, id int64, d domain.Deliveryman) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
