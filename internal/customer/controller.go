package customer

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

// List returns every customer, or the ones matching ?q= ordered by ?sort=.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var (
		customers []domain.Customer
		err       error
	)
	if q := r.URL.Query(); q.Has("q") {
		customers, err = c.repo.Search(r.Context(), q.Get("q"), domain.ParseSortDirection(q.Get("sort")))
	} else {
		customers, err = c.repo.FindAll(r.Context())
	}
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.NewCustomerResponses(customers))
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	id, err := commons.PathID(r)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	customer, err := c.repo.FindByID(r.Context(), id)
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}
	if customer == nil {
		commons.WriteError(w, logger, traceID, notFound(id))
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.NewCustomerResponse(*customer))
}

func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CustomerRequest
	if err := commons.DecodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid customer body", zap.Error(err))
		commons.WriteError(w, logger, traceID, err)
		return
	}

	id, err := c.repo.Create(r.Context(), req.ToDomain())
	if err != nil {
		commons.WriteError(w, logger, traceID, err)
		return
	}

	logger.Info("customer created", zap.Int64("customerId", id))
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

	var req dto.CustomerRequest
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

	logger.Info("customer deleted", zap.Int64("customerId", id))
	w.WriteHeader(http.StatusNoContent)
}

func notFound(id int64) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
}
