package deliveryman

import (
	"go.uber.org/zap"

	"orderdesk/internal/deliveryman/repository"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

func NewModule(provider *database.Provider, coordinator *txn.Coordinator, logger *zap.Logger) *Controller {
	repo := repository.NewSQLDeliverymanRepository(provider, coordinator)
	return NewController(repo, logger)
}
