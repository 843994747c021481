package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"orderdesk/internal/infrastructure/database"
)

// OrderItemRepository writes the order_item links of one order. Every method
// runs on the caller's transaction.
type OrderItemRepository struct{}

func NewOrderItemRepository() *OrderItemRepository {
	return &OrderItemRepository{}
}

// Insert adds one link row per entry of itemIDs, repeats included. Rows are
// written in batches that keep every statement under the driver's bind
// variable limit.
func (r *OrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, orderID int64, itemIDs []int64) (int64, error) {
	var total int64
	for chunk := range slices.Chunk(itemIDs, database.MaxParamsPerQuery/2) {
		values := make([]string, len(chunk))
		args := make([]any, 0, 2*len(chunk))
		for i, itemID := range chunk {
			values[i] = "(?, ?)"
			args = append(args, orderID, itemID)
		}

		query := fmt.Sprintf(`INSERT INTO order_item (order_id, item_id) VALUES %s`, strings.Join(values, ", "))

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, database.Classify("inserting order items", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return 0, database.Classify("getting rows affected", err)
		}
		total += rowsAffected
	}

	return total, nil
}

func (r *OrderItemRepository) DeleteByOrder(ctx context.Context, tx *sql.Tx, orderID int64) (int64, error) {
	result, err := tx.ExecContext(ctx, `DELETE FROM order_item WHERE order_id = ?`, orderID)
	if err != nil {
		return 0, database.Classify("deleting order items", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, database.Classify("getting rows affected", err)
	}

	return rowsAffected, nil
}
