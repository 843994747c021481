package item

import (
	"go.uber.org/zap"

	"orderdesk/internal/item/repository"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

func NewModule(provider *database.Provider, coordinator *txn.Coordinator, logger *zap.Logger) *Controller {
	repo := repository.NewSQLItemRepository(provider, coordinator)
	return NewController(repo, logger)
}
