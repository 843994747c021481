package order

import (
	"go.uber.org/zap"

	customerrepo "orderdesk/internal/customer/repository"
	deliverymanrepo "orderdesk/internal/deliveryman/repository"
	"orderdesk/internal/infrastructure/database"
	itemrepo "orderdesk/internal/item/repository"
	"orderdesk/internal/order/controller"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/txn"
)

func NewModule(provider *database.Provider, coordinator *txn.Coordinator, logger *zap.Logger) *controller.OrderController {
	items := itemrepo.NewSQLItemRepository(provider, coordinator)
	customers := customerrepo.NewSQLCustomerRepository(provider, coordinator)
	deliverymen := deliverymanrepo.NewSQLDeliverymanRepository(provider, coordinator)

	hydrator := orderrepo.NewHydrator(provider, items, customers, deliverymen, logger)
	orderRepo := orderrepo.NewSQLOrderRepository(hydrator, orderrepo.NewOrderItemRepository(), coordinator, logger)

	return controller.NewOrderController(orderRepo, logger)
}
