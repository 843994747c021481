package repository

import (
	"context"
	"database/sql"
	"fmt"

	"orderdesk/internal/domain"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

const selectDeliverymen = `
	SELECT d.id, d.name, d.phone_number, o.id
	FROM deliveryman d
	LEFT JOIN orders o ON o.deliveryman_id = d.id`

type SQLDeliverymanRepository struct {
	provider    *database.Provider
	coordinator *txn.Coordinator
}

func NewSQLDeliverymanRepository(provider *database.Provider, coordinator *txn.Coordinator) *SQLDeliverymanRepository {
	return &SQLDeliverymanRepository{provider: provider, coordinator: coordinator}
}

func (r *SQLDeliverymanRepository) FindAll(ctx context.Context) ([]domain.Deliveryman, error) {
	return r.query(ctx, "querying deliverymen", selectDeliverymen+` ORDER BY d.id, o.id`)
}

// FindByID returns nil and no error when no deliveryman has the given id.
func (r *SQLDeliverymanRepository) FindByID(ctx context.Context, id int64) (*domain.Deliveryman, error) {
	deliverymen, err := r.query(ctx, "querying deliveryman by id", selectDeliverymen+` WHERE d.id = ? ORDER BY o.id`, id)
	if err != nil {
		return nil, err
	}
	if len(deliverymen) == 0 {
		return nil, nil
	}
	return &deliverymen[0], nil
}

// Search matches keyword literally anywhere in the name or phone number.
func (r *SQLDeliverymanRepository) Search(ctx context.Context, keyword string, dir domain.SortDirection) ([]domain.Deliveryman, error) {
	pattern := database.ContainsPattern(keyword)
	query := fmt.Sprintf(`%s
		WHERE d.name LIKE ? ESCAPE '!' OR d.phone_number LIKE ? ESCAPE '!'
		ORDER BY d.name %s, d.id, o.id`, selectDeliverymen, dir.SQL())

	return r.query(ctx, "searching deliverymen", query, pattern, pattern)
}

func (r *SQLDeliverymanRepository) Create(ctx context.Context, d domain.Deliveryman) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	result, err := r.provider.DB().ExecContext(ctx,
		`INSERT INTO deliveryman (name, phone_number) VALUES (?, ?)`,
		d.Name, d.PhoneNumber,
	)
	if err != nil {
		return 0, database.Classify("inserting deliveryman", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, database.Classify("getting last insert id", err)
	}

	return id, nil
}

func (r *SQLDeliverymanRepository) Update(ctx context.Context, id int64, d domain.Deliveryman) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	result, err := r.provider.DB().ExecContext(ctx,
		`UPDATE deliveryman SET name = ?, phone_number = ? WHERE id = ?`,
		d.Name, d.PhoneNumber, id,
	)
	if err != nil {
		return 0, database.Classify("updating deliveryman", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, database.Classify("getting rows affected", err)
	}

	return rowsAffected, nil
}

// Delete unassigns the deliveryman from its orders, which survive, then
// removes the deliveryman row.
func (r *SQLDeliverymanRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.coordinator.Run(ctx, "delete deliveryman",
		txn.Step{
			Name:  "unassign orders",
			Query: `UPDATE orders SET deliveryman_id = NULL WHERE deliveryman_id = ?`,
			Args:  []any{id},
		},
		txn.Step{
			Name:  "delete deliveryman",
			Query: `DELETE FROM deliveryman WHERE id = ?`,
			Args:  []any{id},
		},
	)
	if err != nil {
		return 0, err
	}

	return affected[1], nil
}

func (r *SQLDeliverymanRepository) query(ctx context.Context, op, query string, args ...any) ([]domain.Deliveryman, error) {
	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	rows, err := r.provider.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(op, err)
	}
	defer rows.Close()

	var deliverymen []domain.Deliveryman
	index := make(map[int64]int)

	for rows.Next() {
		var (
			d       domain.Deliveryman
			orderID sql.NullInt64
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.PhoneNumber, &orderID); err != nil {
			return nil, database.Classify(op+": scanning deliveryman row", err)
		}

		i, seen := index[d.ID]
		if !seen {
			i = len(deliverymen)
			index[d.ID] = i
			deliverymen = append(deliverymen, d)
		}
		if orderID.Valid {
			deliverymen[i].AddOrder(orderID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, database.Classify(op+": iterating deliveryman rows", err)
	}

	return deliverymen, nil
}
