package repository

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"orderdesk/internal/domain"
	"orderdesk/internal/infrastructure/database"
	"orderdesk/internal/txn"
)

type SQLItemRepository struct {
	provider    *database.Provider
	coordinator *txn.Coordinator
}

func NewSQLItemRepository(provider *database.Provider, coordinator *txn.Coordinator) *SQLItemRepository {
	return &SQLItemRepository{provider: provider, coordinator: coordinator}
}

func (r *SQLItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	return r.query(ctx, "querying items", `SELECT id, name, price FROM item ORDER BY id`)
}

// FindByID returns nil and no error when no item has the given id.
func (r *SQLItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	return r.queryOne(ctx, "querying item by id", `SELECT id, name, price FROM item WHERE id = ?`, id)
}

// FindByName returns the first item with exactly this name, or nil.
func (r *SQLItemRepository) FindByName(ctx context.Context, name string) (*domain.Item, error) {
	return r.queryOne(ctx, "querying item by name", `SELECT id, name, price FROM item WHERE name = ? ORDER BY id LIMIT 1`, name)
}

// FindByIDs returns the items that exist among ids, in id order. Duplicate
// and unknown ids are ignored. Ids are looked up in chunks of
// database.MaxParamsPerQuery so any number of ids stays under the driver's
// bind variable limit.
func (r *SQLItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	var items []domain.Item
	for chunk := range slices.Chunk(unique, database.MaxParamsPerQuery) {
		placeholders := make([]string, len(chunk))
		args := make([]any, len(chunk))
		for i, id := range chunk {
			placeholders[i] = "?"
			args[i] = id
		}

		query := fmt.Sprintf(`
			SELECT id, name, price
			FROM item
			WHERE id IN (%s)`,
			strings.Join(placeholders, ", "),
		)

		found, err := r.query(ctx, "querying items by ids", query, args...)
		if err != nil {
			return nil, err
		}
		items = append(items, found...)
	}

	slices.SortFunc(items, func(a, b domain.Item) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return items, nil
}

// Search matches keyword literally anywhere in the item name.
func (r *SQLItemRepository) Search(ctx context.Context, keyword string, dir domain.SortDirection) ([]domain.Item, error) {
	query := fmt.Sprintf(`
		SELECT id, name, price
		FROM item
		WHERE name LIKE ? ESCAPE '!'
		ORDER BY name %s, id`, dir.SQL())

	return r.query(ctx, "searching items", query, database.ContainsPattern(keyword))
}

func (r *SQLItemRepository) Create(ctx context.Context, item domain.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	result, err := r.provider.DB().ExecContext(ctx,
		`INSERT INTO item (name, price) VALUES (?, ?)`,
		item.Name, item.Price.String(),
	)
	if err != nil {
		return 0, database.Classify("inserting item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, database.Classify("getting last insert id", err)
	}

	return id, nil
}

func (r *SQLItemRepository) Update(ctx context.Context, id int64, item domain.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	result, err := r.provider.DB().ExecContext(ctx,
		`UPDATE item SET name = ?, price = ? WHERE id = ?`,
		item.Name, item.Price.String(), id,
	)
	if err != nil {
		return 0, database.Classify("updating item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, database.Classify("getting rows affected", err)
	}

	return rowsAffected, nil
}

// Delete drops the item from every order that links it, then removes the
// item. The orders themselves survive.
func (r *SQLItemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.coordinator.Run(ctx, "delete item",
		txn.Step{
			Name:  "delete order links",
			Query: `DELETE FROM order_item WHERE item_id = ?`,
			Args:  []any{id},
		},
		txn.Step{
			Name:  "delete item",
			Query: `DELETE FROM item WHERE id = ?`,
			Args:  []any{id},
		},
	)
	if err != nil {
		return 0, err
	}

	return affected[1], nil
}

func (r *SQLItemRepository) queryOne(ctx context.Context, op, query string, args ...any) (*domain.Item, error) {
	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	var item domain.Item
	err := r.provider.DB().QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.Name, &item.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.Classify(op, err)
	}

	return &item, nil
}

func (r *SQLItemRepository) query(ctx context.Context, op, query string, args ...any) ([]domain.Item, error) {
	ctx, cancel := r.provider.Scope(ctx)
	defer cancel()

	rows, err := r.provider.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(op, err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			return nil, database.Classify(op+": scanning item row", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, database.Classify(op+": iterating item rows", err)
	}

	return items, nil
}
