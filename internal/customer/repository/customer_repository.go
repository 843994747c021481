package repository

import (
	"context"
	"database/sql"
	"fmt"

	"orderdesk/internal/domain"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

const selectCustomers = `
	SELECT c.id, c.name, c.address, c.phone_number, o.id
	FROM customer c
	LEFT JOIN orders o ON o.customer_id = c.id`

type SQLCustomerRepository struct {
	provider    *database.Provider
	coordinator *txn.Coordinator
}

func NewSQLCustomerRepository(provider *database.Provider, coordinator *txn.Coordinator) *SQLCustomerRepository {
	return &SQLCustomerRepository{provider: provider, coordinator: coordinator}
}

// FindAll returns every customer once, each with the ids of the orders that
// reference it.
func (r *SQLCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	return r.query(ctx, "querying customers", selectCustomers+` ORDER BY c.id, o.id`)
}

// FindByID returns nil and no error when no customer has the given id.
func (r *SQLCustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	customers, err := r.query(ctx, "querying customer by id", selectCustomers+` WHERE c.id = ? ORDER BY o.id`, id)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}

// Search matches keyword anywhere in the name or phone number. % and _ in
// keyword are literal characters, not wildcards.
func (r *SQLCustomerRepository) Search(ctx context.Context, keyword string, dir domain.SortDirection) ([]domain.Customer, error) {
	pattern := database.ContainsPattern(keyword)
	query := fmt.Sprintf(`%s
		WHERE c.name LIKE ? ESCAPE '!' OR c.phone_number LIKE ? ESCAPE '!'
		ORDER BY c.name %s, c.id, o.id`, selectCustomers, dir.SQL())

	return r.query(ctx, "searching customers", query, pattern, pattern)
}

func (r *SQLCustomerRepository) Create(ctx context.Context, c domain.Customer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	result, err := r.provider.DB().ExecContext(ctx,
		`INSERT INTO customer (name, phone_number, address) VALUES (?, ?, ?)`,
		c.Name, c.PhoneNumber, c.Address,
	)
	if err != nil {
		return 0, database.Classify("inserting customer", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, database.Classify("getting last insert id", err)
	}

	return id, nil
}

// Update overwrites every mutable field. Zero rows affected means no customer
// has that id.
func (r *SQLCustomerRepository) Update(ctx context.Context, id int64, c domain.Customer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	result, err := r.provider.DB().ExecContext(ctx,
		`UPDATE customer SET name = ?, phone_number = ?, address = ? WHERE id = ?`,
		c.Name, c.PhoneNumber, c.Address, id,
	)
	if err != nil {
		return 0, database.Classify("updating customer", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, database.Classify("getting rows affected", err)
	}

	return rowsAffected, nil
}

// Delete removes the customer together with its orders and their item links.
func (r *SQLCustomerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.coordinator.Run(ctx, "delete customer",
		txn.Step{
			Name:  "delete order items",
			Query: `DELETE FROM order_item WHERE order_id IN (SELECT id FROM orders WHERE customer_id = ?)`,
			Args:  []any{id},
		},
		txn.Step{
			Name:  "delete orders",
			Query: `DELETE FROM orders WHERE customer_id = ?`,
			Args:  []any{id},
		},
		txn.Step{
			Name:  "delete customer",
			Query: `DELETE FROM customer WHERE id = ?`,
			Args:  []any{id},
		},
	)
	if err != nil {
		return 0, err
	}

	return affected[2], nil
}

// query groups the joined rows by customer id in first-seen order. A NULL
// order id leaves the customer with no orders.
func (r *SQLCustomerRepository) query(ctx context.Context, op, query string, args ...any) ([]domain.Customer, error) {
	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	rows, err := r.provider.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(op, err)
	}
	defer rows.Close()

	var customers []domain.Customer
	index := make(map[int64]int)

	for rows.Next() {
		var (
			c       domain.Customer
			orderID sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.PhoneNumber, &orderID); err != nil {
			return nil, database.Classify(op+": scanning customer row", err)
		}

		i, seen := index[c.ID]
		if !seen {
			i = len(customers)
			index[c.ID] = i
			customers = append(customers, c)
		}
		if orderID.Valid {
			customers[i].AddOrder(orderID.Int64)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, database.Classify(op+": iterating customer rows", err)
	}

	return customers, nil
}
