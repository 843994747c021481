package repository

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

const dateLayout = "2006-01-02"

var (
	// ErrHeaderNotWritten aborts an order create whose header insert reported
	// no row or no generated id.
	ErrHeaderNotWritten = errors.New("order header was not written")
)

const searchOrders = `o.id IN (
	SELECT s.id
	FROM orders s
	LEFT JOIN customer c ON c.id = s.customer_id
	LEFT JOIN deliveryman d ON d.id = s.deliveryman_id
	WHERE c.name LIKE ? ESCAPE '!' OR d.name LIKE ? ESCAPE '!' OR CAST(s.total_price AS CHAR) LIKE ? ESCAPE '!'
)`

// SQLOrderRepository is the only write path for the order aggregate. Reads
// are always fully hydrated.
type SQLOrderRepository struct {
	hydrator    *Hydrator
	links       *OrderItemRepository
	coordinator *txn.Coordinator
	logger      *zap.Logger
}

func NewSQLOrderRepository(hydrator *Hydrator, links *OrderItemRepository, coordinator *txn.Coordinator, logger *zap.Logger) *SQLOrderRepository {
	return &SQLOrderRepository{
		hydrator:    hydrator,
		links:       links,
		coordinator: coordinator,
		logger:      logger,
	}
}

func (r *SQLOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.hydrator.Hydrate(ctx, "querying orders", "")
}

// FindByID returns nil and no error when no order has the given id.
func (r *SQLOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	orders, err := r.hydrator.Hydrate(ctx, "querying order by id", "o.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// Search matches keyword literally in the customer name, the deliveryman
// name or the total price text.
func (r *SQLOrderRepository) Search(ctx context.Context, keyword string) ([]domain.Order, error) {
	pattern := database.ContainsPattern(keyword)
	return r.hydrator.Hydrate(ctx, "searching orders", searchOrders, pattern, pattern, pattern)
}

// Create writes the header and its item links in one transaction and returns
// the generated order id.
func (r *SQLOrderRepository) Create(ctx context.Context, draft domain.OrderDraft) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}

	var orderID int64
	err := r.coordinator.RunFunc(ctx, "create order", func(ctx context.Context, tx *sql.Tx) error {
		orderID = 0

		result, err := tx.ExecContext(ctx,
			`INSERT INTO orders (total_price, date, customer_id, deliveryman_id) VALUES (?, ?, ?, ?)`,
			draft.TotalPrice.String(), draft.CreatedAt.Format(dateLayout), draft.CustomerID, nullableID(draft.DeliverymanID),
		)
		if err != nil {
			return database.Classify("create order: insert header", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return database.Classify("create order: rows affected", err)
		}
		if rowsAffected == 0 {
			return apperrors.NewStorageError("create order: insert header", ErrHeaderNotWritten)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return database.Classify("create order: last insert id", err)
		}
		if id <= 0 {
			return apperrors.NewStorageError("create order: insert header", ErrHeaderNotWritten)
		}

		if _, err := r.links.Insert(ctx, tx, id, draft.ItemIDs); err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("order created",
		zap.Int64("orderId", orderID),
		zap.Int("items", len(draft.ItemIDs)),
	)

	return orderID, nil
}

// Update overwrites the header and replaces the whole item list. When no
// order has the id nothing is written and 0 is returned.
func (r *SQLOrderRepository) Update(ctx context.Context, id int64, draft domain.OrderDraft) (int64, error) {
	if err := draft.Validate(); err != nil {
		return 0, err
	}

	var affected int64
	err := r.coordinator.RunFunc(ctx, "update order", func(ctx context.Context, tx *sql.Tx) error {
		affected = 0

		result, err := tx.ExecContext(ctx,
			`UPDATE orders SET total_price = ?, date = ?, customer_id = ?, deliveryman_id = ? WHERE id = ?`,
			draft.TotalPrice.String(), draft.CreatedAt.Format(dateLayout), draft.CustomerID, nullableID(draft.DeliverymanID), id,
		)
		if err != nil {
			return database.Classify("update order: update header", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return database.Classify("update order: rows affected", err)
		}
		if rowsAffected == 0 {
			return nil
		}

		if _, err := r.links.DeleteByOrder(ctx, tx, id); err != nil {
			return err
		}
		if _, err := r.links.Insert(ctx, tx, id, draft.ItemIDs); err != nil {
			return err
		}

		affected = rowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

// Delete removes the order's item links, then the order.
func (r *SQLOrderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.coordinator.Run(ctx, "delete order",
		txn.Step{
			Name:  "delete order items",
			Query: `DELETE FROM order_item WHERE order_id = ?`,
			Args:  []any{id},
		},
		txn.Step{
			Name:  "delete order",
			Query: `DELETE FROM orders WHERE id = ?`,
			Args:  []any{id},
		},
	)
	if err != nil {
		return 0, err
	}

	return affected[1], nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
