package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/commons"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type OrderRepository interface {
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	Search(ctx context.Context, keyword string) ([]domain.Order, error)
	Create(ctx context.Context, draft domain.OrderDraft) (int64, error)
	Update(ctx context.Context, id int64, draft domain.OrderDraft) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type OrderController struct {
	repo   OrderRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderController(repo OrderRepository, logger *zap.Logger) *OrderController {
	return &OrderController{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var (
		orders []domain.Order
		err    error
	)
	if q := r.URL.Query(); q.Has("q") {
		orders, err = c.repo.Search(r.Context(), q.Get("q"))
	} else {
		orders, err = c.repo.FindAll(r.Context())
	}
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponses(orders))
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	order, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}
	if order == nil {
		commons.WriteError(w, logger, traceID, notFound(id))
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(*order))
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	draft, err := c.decodeDraft(w, r)
	if err != nil {
		logger.Warn("invalid order body", zap.Error(err))
		commons.WriteError(w, logger, traceID, err)
		return
	}

	id, err := c.repo.Create(r.Context(), draft)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusCreated, dto.CreatedResponse{TraceID: traceID, ID: id})
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	draft, err := c.decodeDraft(w, r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	n, err := c.repo.Update(r.Context(), id, draft)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}
	if n == 0 {
		commons.WriteError(w, logger, traceID, notFound(id))
		return
	}

	logger.Info("order updated", zap.Int64("orderId", id), zap.Int("items", len(draft.ItemIDs)))
	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	n, err := c.repo.Delete(r.Context(), id)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}
	if n == 0 {
		commons.WriteError(w, logger, traceID, notFound(id))
		return
	}

	logger.Info("order deleted", zap.Int64("orderId", id))
	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) decodeDraft(w http.ResponseWriter, r *http.Request) (domain.OrderDraft, error) {
	var req dto.OrderRequest
	if err := commons.DecodeJSON(w, r, &req); err != nil {
		return domain.OrderDraft{}, err
	}

	draft, err := req.ToDraft(c.now())
	if err != nil {
		return domain.OrderDraft{}, err
	}

	if err := draft.Validate(); err != nil {
		return domain.OrderDraft{}, err
	}

	return draft, nil
}

func notFound(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
}
