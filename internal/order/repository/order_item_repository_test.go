package repository

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "orderdesk/internal/errors"
	"orderdesk/internal/testutil"
)

func TestOrderItemRepository_Insert_KeepsRepeats(t *testing.T) {
	p := testutil.SetupSQLiteDB(t)
	repo := NewOrderItemRepository()

	customer := testutil.MustExec(t, p, `INSERT INTO customer (name) VALUES ('Ann')`)
	item := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Widget', 9.99)`)
	orderID := testutil.MustExec(t, p, `INSERT INTO orders (total_price, date, customer_id) VALUES (0, '2024-10-01', ?)`, customer)

	tx, err := p.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	n, err := repo.Insert(context.Background(), tx, orderID, []int64{item, item, item})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, tx.Commit())
	assert.Equal(t, 3, testutil.Count(t, p, "order_item", "order_id = ? AND item_id = ?", orderID, item))
}

func TestOrderItemRepository_Insert_ManyLinks(t *testing.T) {
	p := testutil.SetupSQLiteDB(t)
	repo := NewOrderItemRepository()

	customer := testutil.MustExec(t, p, `INSERT INTO customer (name) VALUES ('Ann')`)
	seeded := testutil.SeedItems(t, p, 700)
	orderID := testutil.MustExec(t, p, `INSERT INTO orders (total_price, date, customer_id) VALUES (0, '2024-10-01', ?)`, customer)

	links := append(slices.Clone(seeded), seeded[:301]...)

	tx, err := p.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	n, err := repo.Insert(context.Background(), tx, orderID, links)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), n)

	require.NoError(t, tx.Commit())
	assert.Equal(t, 1001, testutil.Count(t, p, "order_item", "order_id = ?", orderID))
}

func TestOrderItemRepository_Insert_Empty(t *testing.T) {
	p := testutil.SetupSQLiteDB(t)
	repo := NewOrderItemRepository()

	tx, err := p.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	n, err := repo.Insert(context.Background(), tx, 1, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestOrderItemRepository_Insert_UnknownOrder(t *testing.T) {
	p := testutil.SetupSQLiteDB(t)
	repo := NewOrderItemRepository()
	item := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Widget', 9.99)`)

	tx, err := p.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = repo.Insert(context.Background(), tx, 404, []int64{item})

	_, ok := apperrors.IsIntegrityViolation(err)
	assert.True(t, ok, "expected IntegrityViolation, got %v", err)
}

func TestOrderItemRepository_DeleteByOrder(t *testing.T) {
	p := testutil.SetupSQLiteDB(t)
	repo := NewOrderItemRepository()

	customer := testutil.MustExec(t, p, `INSERT INTO customer (name) VALUES ('Ann')`)
	item := testutil.MustExec(t, p, `INSERT INTO item (name, price) VALUES ('Widget', 9.99)`)
	first := testutil.MustExec(t, p, `INSERT INTO orders (total_price, date, customer_id) VALUES (0, '2024-10-01', ?)`, customer)
	second := testutil.MustExec(t, p, `INSERT INTO orders (total_price, date, customer_id) VALUES (0, '2024-10-01', ?)`, customer)
	testutil.MustExec(t, p, `INSERT INTO order_item (order_id, item_id) VALUES (?, ?), (?, ?), (?, ?)`, first, item, first, item, second, item)

	tx, err := p.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	n, err := repo.DeleteByOrder(context.Background(), tx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, tx.Commit())

	assert.Equal(t, 0, testutil.Count(t, p, "order_item", "order_id = ?", first))
	assert.Equal(t, 1, testutil.Count(t, p, "order_item", "order_id = ?", second))
}
