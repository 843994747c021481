package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/infrastructure/database"
)

type ItemFinder interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Item, error)
}

type CustomerFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type DeliverymanFinder interface {
	FindByID(ctx context.Context, id int64) (*domain.Deliveryman, error)
}

const selectOrderRows = `
	SELECT o.id, o.total_price, o.date, o.customer_id, o.deliveryman_id, oi.item_id
	FROM orders o
	LEFT JOIN order_item oi ON oi.order_id = o.id`

// orderRows accumulates the joined rows of one order.
type orderRows struct {
	order   domain.Order
	itemIDs []int64
}

// Hydrator rebuilds Order aggregates from orders joined with order_item.
// Referenced items, customers and deliverymen are resolved through their
// repositories. It never writes.
type Hydrator struct {
	provider    *database.Provider
	items       ItemFinder
	customers   CustomerFinder
	deliverymen DeliverymanFinder
	logger      *zap.Logger
}

func NewHydrator(provider *database.Provider, items ItemFinder, customers CustomerFinder, deliverymen DeliverymanFinder, logger *zap.Logger) *Hydrator {
	return &Hydrator{
		provider:    provider,
		items:       items,
		customers:   customers,
		deliverymen: deliverymen,
		logger:      logger,
	}
}

// Hydrate loads the orders selected by where (empty for all) in first-seen
// order. where is a fixed SQL fragment; caller input goes in args. Any read
// failure returns no orders at all.
func (h *Hydrator) Hydrate(ctx context.Context, op, where string, args ...any) ([]domain.Order, error) {
	accumulated, err := h.collect(ctx, op, where, args...)
	if err != nil {
		return nil, err
	}
	if len(accumulated) == 0 {
		return nil, nil
	}

	items, err := h.resolveItems(ctx, accumulated)
	if err != nil {
		return nil, err
	}

	customers := make(map[int64]*domain.Customer)
	deliverymen := make(map[int64]*domain.Deliveryman)

	orders := make([]domain.Order, 0, len(accumulated))
	for _, acc := range accumulated {
		o := acc.order
		o.Items = make([]domain.Item, 0, len(acc.itemIDs))

		for _, itemID := range acc.itemIDs {
			item, ok := items[itemID]
			if !ok {
				h.logger.Warn("order links a missing item, skipping",
					zap.Int64("orderId", o.ID),
					zap.Int64("itemId", itemID),
				)
				continue
			}
			o.Items = append(o.Items, item)
		}

		customer, cached := customers[o.CustomerID]
		if !cached {
			customer, err = h.customers.FindByID(ctx, o.CustomerID)
			if err != nil {
				return nil, err
			}
			customers[o.CustomerID] = customer
		}
		if customer == nil {
			h.logger.Warn("order references a missing customer",
				zap.Int64("orderId", o.ID),
				zap.Int64("customerId", o.CustomerID),
			)
		}
		o.Customer = customer

		if o.DeliverymanID != nil {
			id := *o.DeliverymanID
			deliveryman, cached := deliverymen[id]
			if !cached {
				deliveryman, err = h.deliverymen.FindByID(ctx, id)
				if err != nil {
					return nil, err
				}
				deliverymen[id] = deliveryman
			}
			if deliveryman == nil {
				h.logger.Warn("order references a missing deliveryman",
					zap.Int64("orderId", o.ID),
					zap.Int64("deliverymanId", id),
				)
			}
			o.Deliveryman = deliveryman
		}

		orders = append(orders, o)
	}

	return orders, nil
}

// collect streams the joined rows into one accumulator per order id. The rows
// are closed before any referenced entity is looked up. Header fields come
// from the first row seen for each order.
func (h *Hydrator) collect(ctx context.Context, op, where string, args ...any) ([]*orderRows, error) {
	query := selectOrderRows
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY o.id"

	ctx, cancel := h.provider.Scope(ctx)
	defer cancel()

	rows, err := h.provider.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(op, err)
	}
	defer rows.Close()

	var accumulated []*orderRows
	byID := make(map[int64]*orderRows)

	for rows.Next() {
		var (
			id            int64
			totalPrice    decimal.Decimal
			createdAt     time.Time
			customerID    int64
			deliverymanID sql.NullInt64
			itemID        sql.NullInt64
		)
		if err := rows.Scan(&id, &totalPrice, &createdAt, &customerID, &deliverymanID, &itemID); err != nil {
			return nil, database.Classify(op+": scanning order row", err)
		}

		acc, seen := byID[id]
		if !seen {
			acc = &orderRows{order: domain.Order{
				ID:         id,
				TotalPrice: totalPrice,
				CreatedAt:  createdAt,
				CustomerID: customerID,
			}}
			if deliverymanID.Valid {
				d := deliverymanID.Int64
				acc.order.DeliverymanID = &d
			}
			byID[id] = acc
			accumulated = append(accumulated, acc)
		}

		if itemID.Valid {
			acc.itemIDs = append(acc.itemIDs, itemID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, database.Classify(op+": iterating order rows", err)
	}

	return accumulated, nil
}

func (h *Hydrator) resolveItems(ctx context.Context, accumulated []*orderRows) (map[int64]domain.Item, error) {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, acc := range accumulated {
		for _, id := range acc.itemIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	found, err := h.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make(map[int64]domain.Item, len(found))
	for _, item := range found {
		items[item.ID] = item
	}
	return items, nil
}
