package item

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/commons"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{
		repo:   repo,
		logger: logger,
	}
}

// List returns every item, the ones matching ?q= ordered by ?sort=, or the
// item named exactly ?name=.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var (
		items []domain.Item
		err   error
	)
	q := r.URL.Query()
	switch {
	case q.Has("name"):
		var item *domain.Item
		item, err = c.repo.FindByName(r.Context(), q.Get("name"))
		if item != nil {
			items = []domain.Item{*item}
		}
	case q.Has("q"):
		items, err = c.repo.Search(r.Context(), q.Get("q"), domain.ParseSortDirection(q.Get("sort")))
	default:
		items, err = c.repo.FindAll(r.Context())
	}
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.NewItemResponses(items))
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	item, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}
	if item == nil {
		commons.WriteError(w, logger, traceID, notFound(id))
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.NewItemResponse(*item))
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.ItemRequest
	if err := commons.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid item body", zap.Error(err))
		commons.WriteError(w, logger, traceID, err)
		return
	}

	id, err := c.repo.Create(r.Context(), req.ToDomain())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	logger.Info("item created", zap.Int64("itemId", id))
	commons.WriteJSON(w, logger, http.StatusCreated, dto.CreatedResponse{TraceID: traceID, ID: id})
}

func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	var req dto.ItemRequest
	if err := commons.DecodeJSON(w, r, &req); err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	n, err := c.repo.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}
	if n == 0 {
		commons.WriteError(w, logger, traceID, notFound(id))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
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

	logger.Info("item deleted", zap.Int64("itemId", id))
	w.WriteHeader(http.StatusNoContent)
}

func notFound(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("item with id %d not found", id))
}
