package customer

import (
	"go.uber.org/zap"

	"orderdesk/internal/customer/repository"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

func NewModule(provider *database.Provider, coordinator *txn.Coordinator, logger *zap.Logger) *Controller {
	repo := repository.NewSQLCustomerRepository(provider, coordinator)
	return NewController(repo, logger)
}
